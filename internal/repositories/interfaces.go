package repositories

import (
	"context"

	"rockie-classroom-api/internal/models"
)

// RecordStore defines generic point operations over one entity table keyed
// by (tenant_id, entity_id). Each entity family gets its own RecordStore
// bound to its table; the operations are otherwise identical.
//
// Every call is independently consistent at the single-item level only; no
// cross-entity transactions are offered.
type RecordStore interface {
	// Get retrieves a record by its composite key. Returns ErrNotFound if absent.
	Get(ctx context.Context, tenantID, entityID string) (*models.Record, error)

	// Put creates a new record. Returns ErrDuplicateEntry if a record with the
	// same composite key already exists; an existing record is never silently
	// overwritten.
	Put(ctx context.Context, record *models.Record) error

	// Update replaces an existing record in place. The composite key never
	// changes. Returns ErrNotFound if no record with that key exists.
	Update(ctx context.Context, record *models.Record) error

	// Delete removes a record by its composite key. Returns ErrNotFound if absent.
	Delete(ctx context.Context, tenantID, entityID string) error

	// ListByTenant retrieves all records in the tenant partition.
	ListByTenant(ctx context.Context, tenantID string) ([]*models.Record, error)
}

// TokenStore defines operations over the access-token table keyed by the
// opaque token string.
type TokenStore interface {
	// Get retrieves a token record. Returns ErrNotFound if the token was never
	// issued or has been removed.
	Get(ctx context.Context, token string) (*models.AccessToken, error)

	// Put stores a freshly issued token. Tokens are written once; reissuing
	// generates a new token string, so overwrites do not occur in practice.
	Put(ctx context.Context, token *models.AccessToken) error
}

// StudentStore defines the lookups the login flow needs over the student
// table.
type StudentStore interface {
	// GetByEmail retrieves a student by email within a tenant. Returns
	// ErrNotFound if no such student exists.
	GetByEmail(ctx context.Context, tenantID, email string) (*models.Student, error)

	// Put stores a student record, overwriting any existing one with the same
	// key. Registration is handled out-of-band; this exists for seeding and
	// tests.
	Put(ctx context.Context, student *models.Student) error
}

// TransactionStore appends purchase audit records.
type TransactionStore interface {
	// Put appends a transaction. Transaction IDs are generated, so duplicate
	// keys do not occur.
	Put(ctx context.Context, tx *models.Transaction) error
}

// EntityStores bundles the per-entity record stores handed to the container.
type EntityStores struct {
	Activities   RecordStore
	Purchasables RecordStore
	Rewards      RecordStore
	Rockies      RecordStore
}
