package auth

import (
	"context"
	"fmt"

	"rockie-classroom-api/internal/repositories"
)

// TokenResolver resolves identities with a single point read of the token
// store.
type TokenResolver struct {
	tokens repositories.TokenStore
}

// NewTokenResolver creates a resolver over the given token store.
func NewTokenResolver(tokens repositories.TokenStore) *TokenResolver {
	return &TokenResolver{tokens: tokens}
}

// Resolve maps a validated token to its tenant and student. A missing record
// or missing identity fields yield ErrIdentityNotFound: the token passed
// validation, so absence here is a store inconsistency, not a client error.
func (r *TokenResolver) Resolve(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrMissingToken
	}

	record, err := r.tokens.Get(ctx, token)
	if err != nil {
		if repositories.IsNotFound(err) {
			return Identity{}, fmt.Errorf("%w: no token record", ErrIdentityNotFound)
		}
		return Identity{}, fmt.Errorf("resolve identity: %w", err)
	}

	if !record.HasIdentity() {
		return Identity{}, fmt.Errorf("%w: token record missing tenant_id or student_id", ErrIdentityNotFound)
	}

	return Identity{
		TenantID:  record.TenantID,
		SubjectID: record.StudentID,
	}, nil
}
