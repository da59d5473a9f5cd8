// Package auth contains the token validation and identity resolution
// contract shared by every request handler.
//
// Validation answers "is this token authorized" without knowing how tokens
// are minted; resolution maps a validated token to the tenant and student it
// was issued for. Resolution must only run after validation succeeded.
package auth

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrMissingToken is returned when no bearer token was supplied. It
	// short-circuits before any external call.
	ErrMissingToken = errors.New("missing authorization token")

	// ErrValidatorUnavailable is returned when the external validator cannot
	// be reached or answers outside its contract. Maps to a server error, not
	// a rejection.
	ErrValidatorUnavailable = errors.New("token validator unavailable")

	// ErrIdentityNotFound is returned when a validated token has no resolvable
	// identity record. This indicates token-store inconsistency and maps to a
	// server error, never a 403.
	ErrIdentityNotFound = errors.New("token identity not resolvable")
)

// RejectionError reports that the validator refused the token. Reason is an
// opaque short string safe to show callers; no internal detail is attached.
type RejectionError struct {
	Reason string
}

// Error implements the error interface
func (e *RejectionError) Error() string {
	if e.Reason == "" {
		return "unauthorized access"
	}
	return e.Reason
}

// IsRejection checks whether an error is a token rejection.
func IsRejection(err error) bool {
	var rejection *RejectionError
	return errors.As(err, &rejection)
}

// Identity is the tenant and student a token resolves to.
type Identity struct {
	TenantID  string `json:"tenant_id"`
	SubjectID string `json:"student_id"`
}

// TokenValidator decides whether a bearer token is authorized. A nil return
// means authorized; a RejectionError means refused; anything else means the
// decision could not be made.
type TokenValidator interface {
	Validate(ctx context.Context, token string) error
}

// IdentityResolver maps a validated token to its identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (Identity, error)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrValidatorUnavailable, err)
}
