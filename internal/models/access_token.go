package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken represents a previously issued bearer token. The token string
// is the primary key of the token table; tenant and student identity are
// recovered from it after validation.
type AccessToken struct {
	Token     string `json:"token" dynamodbav:"token" validate:"required"`
	TenantID  string `json:"tenant_id" dynamodbav:"tenant_id" validate:"required"`
	StudentID string `json:"student_id" dynamodbav:"student_id" validate:"required"`
	Expires   string `json:"expires" dynamodbav:"expires"`
}

// NewAccessToken issues a fresh opaque token for the given identity with the
// supplied lifetime.
func NewAccessToken(tenantID, studentID string, ttl time.Duration) *AccessToken {
	return &AccessToken{
		Token:     uuid.New().String(),
		TenantID:  tenantID,
		StudentID: studentID,
		Expires:   time.Now().UTC().Add(ttl).Format(TimestampLayout),
	}
}

// ExpiresAt parses the stored expiry timestamp. A zero time and false are
// returned when the field is missing or malformed.
func (t *AccessToken) ExpiresAt() (time.Time, bool) {
	if t.Expires == "" {
		return time.Time{}, false
	}
	expires, err := time.Parse(TimestampLayout, t.Expires)
	if err != nil {
		return time.Time{}, false
	}
	return expires, true
}

// IsExpired reports whether the token expiry has passed at the given instant.
// Tokens without a parseable expiry are treated as expired.
func (t *AccessToken) IsExpired(now time.Time) bool {
	expires, ok := t.ExpiresAt()
	if !ok {
		return true
	}
	return now.After(expires)
}

// HasIdentity reports whether the token record carries the tenant and student
// fields the identity resolver requires.
func (t *AccessToken) HasIdentity() bool {
	return t.TenantID != "" && t.StudentID != ""
}
