package auth

import (
	"context"
	"time"

	"rockie-classroom-api/internal/repositories"
)

// Rejection reasons shared by the store validator and the validate-token
// function. Kept short and opaque; they are shown to callers.
const (
	ReasonTokenNotFound = "token does not exist"
	ReasonTokenExpired  = "token expired"
)

// StoreValidator validates tokens directly against the token store: the
// token must exist and must not be expired. This is the in-process rendition
// of the validate-access-token function; the dedicated Lambda binary and the
// local development server both run it.
type StoreValidator struct {
	tokens repositories.TokenStore
	now    func() time.Time
}

// NewStoreValidator creates a validator over the given token store.
func NewStoreValidator(tokens repositories.TokenStore) *StoreValidator {
	return &StoreValidator{
		tokens: tokens,
		now:    time.Now,
	}
}

// WithClock overrides the time source, for expiry tests.
func (v *StoreValidator) WithClock(now func() time.Time) *StoreValidator {
	v.now = now
	return v
}

// Validate checks existence and expiry of the token record.
func (v *StoreValidator) Validate(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}

	record, err := v.tokens.Get(ctx, token)
	if err != nil {
		if repositories.IsNotFound(err) {
			return &RejectionError{Reason: ReasonTokenNotFound}
		}
		return unavailable(err)
	}

	if record.IsExpired(v.now()) {
		return &RejectionError{Reason: ReasonTokenExpired}
	}
	return nil
}
