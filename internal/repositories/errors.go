package repositories

import (
	"errors"
	"fmt"
)

// Common store errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEntry is returned when a create would overwrite an existing record
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvalidKey is returned when a composite key component is empty
	ErrInvalidKey = errors.New("invalid key")

	// ErrValidation is returned when record validation fails
	ErrValidation = errors.New("validation error")

	// ErrConnection is returned when the backing store is unreachable
	ErrConnection = errors.New("store connection error")

	// ErrTimeout is returned when a store operation times out
	ErrTimeout = errors.New("operation timeout")
)

// StoreError represents a store-specific error with operation context.
// The message is logged server-side; callers map the wrapped sentinel to a
// response status and never forward store detail to clients.
type StoreError struct {
	Op      string // Operation that failed
	Table   string // Table the operation targeted
	Key     string // Record key (if applicable)
	Err     error  // Underlying error
	Message string // Human-readable message
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Key != "" {
		return fmt.Sprintf("%s %s failed for key %s: %v", e.Table, e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Table, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target error
func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStoreError creates a new store error
func NewStoreError(op, table, key string, err error) *StoreError {
	return &StoreError{
		Op:    op,
		Table: table,
		Key:   key,
		Err:   err,
	}
}

// NotFoundError creates a "not found" store error
func NotFoundError(table, key string) *StoreError {
	return &StoreError{
		Op:      "get",
		Table:   table,
		Key:     key,
		Err:     ErrNotFound,
		Message: fmt.Sprintf("record %s not found in %s", key, table),
	}
}

// DuplicateError creates a "duplicate entry" store error
func DuplicateError(table, key string) *StoreError {
	return &StoreError{
		Op:      "put",
		Table:   table,
		Key:     key,
		Err:     ErrDuplicateEntry,
		Message: fmt.Sprintf("record %s already exists in %s", key, table),
	}
}

// ConnectionError creates a "connection" store error
func ConnectionError(op, table string, err error) *StoreError {
	return &StoreError{
		Op:      op,
		Table:   table,
		Err:     ErrConnection,
		Message: fmt.Sprintf("%s %s failed: store unreachable: %v", table, op, err),
	}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate checks if an error is a "duplicate entry" error
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateEntry)
}

// IsValidation checks if an error is a "validation" error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConnection checks if an error is a "connection" error
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}
