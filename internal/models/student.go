package models

import (
	"crypto/sha256"
	"encoding/hex"
)

// Student represents a registered student account. Students are looked up by
// email within a tenant during login; entity ownership references the
// StudentID.
type Student struct {
	TenantID     string `json:"tenant_id" dynamodbav:"tenant_id" validate:"required"`
	StudentID    string `json:"student_id" dynamodbav:"student_id" validate:"required"`
	StudentEmail string `json:"student_email" dynamodbav:"student_email" validate:"required,email"`
	PasswordHash string `json:"-" dynamodbav:"password_hash"`
}

// HashPassword returns the hex-encoded SHA-256 digest used for stored
// student credentials.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPassword reports whether the supplied plaintext password matches the
// stored hash.
func (s *Student) CheckPassword(password string) bool {
	return s.PasswordHash != "" && s.PasswordHash == HashPassword(password)
}
