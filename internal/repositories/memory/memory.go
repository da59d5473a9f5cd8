// Package memory implements the repository interfaces on in-process maps.
//
// It backs the local development server and the package tests; semantics
// (key uniqueness, not-found on absent keys, no silent overwrite on create)
// match the DynamoDB implementation.
package memory

import (
	"context"
	"sync"

	"rockie-classroom-api/internal/models"
	"rockie-classroom-api/internal/repositories"
)

// RecordStore is an in-memory repositories.RecordStore.
type RecordStore struct {
	mu      sync.RWMutex
	table   string
	records map[string]*models.Record
}

// NewRecordStore creates an empty in-memory record store. The table name is
// only used in error messages.
func NewRecordStore(table string) *RecordStore {
	return &RecordStore{
		table:   table,
		records: map[string]*models.Record{},
	}
}

func recordKey(tenantID, entityID string) string {
	return tenantID + "/" + entityID
}

// Get retrieves a record by its composite key.
func (s *RecordStore) Get(ctx context.Context, tenantID, entityID string) (*models.Record, error) {
	if tenantID == "" || entityID == "" {
		return nil, repositories.NewStoreError("get", s.table, "", repositories.ErrInvalidKey)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[recordKey(tenantID, entityID)]
	if !ok {
		return nil, repositories.NotFoundError(s.table, recordKey(tenantID, entityID))
	}
	return record.Clone(), nil
}

// Put creates a new record, refusing to overwrite an existing key.
func (s *RecordStore) Put(ctx context.Context, record *models.Record) error {
	if record.TenantID == "" || record.EntityID == "" {
		return repositories.NewStoreError("put", s.table, "", repositories.ErrInvalidKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey(record.TenantID, record.EntityID)
	if _, exists := s.records[key]; exists {
		return repositories.DuplicateError(s.table, key)
	}
	s.records[key] = record.Clone()
	return nil
}

// Update replaces an existing record in place.
func (s *RecordStore) Update(ctx context.Context, record *models.Record) error {
	if record.TenantID == "" || record.EntityID == "" {
		return repositories.NewStoreError("update", s.table, "", repositories.ErrInvalidKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey(record.TenantID, record.EntityID)
	if _, exists := s.records[key]; !exists {
		return repositories.NotFoundError(s.table, key)
	}
	s.records[key] = record.Clone()
	return nil
}

// Delete removes a record by its composite key.
func (s *RecordStore) Delete(ctx context.Context, tenantID, entityID string) error {
	if tenantID == "" || entityID == "" {
		return repositories.NewStoreError("delete", s.table, "", repositories.ErrInvalidKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey(tenantID, entityID)
	if _, exists := s.records[key]; !exists {
		return repositories.NotFoundError(s.table, key)
	}
	delete(s.records, key)
	return nil
}

// ListByTenant retrieves all records in the tenant partition.
func (s *RecordStore) ListByTenant(ctx context.Context, tenantID string) ([]*models.Record, error) {
	if tenantID == "" {
		return nil, repositories.NewStoreError("query", s.table, "", repositories.ErrInvalidKey)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := []*models.Record{}
	for _, record := range s.records {
		if record.TenantID == tenantID {
			records = append(records, record.Clone())
		}
	}
	return records, nil
}

// TokenStore is an in-memory repositories.TokenStore.
type TokenStore struct {
	mu     sync.RWMutex
	table  string
	tokens map[string]*models.AccessToken
}

// NewTokenStore creates an empty in-memory token store.
func NewTokenStore(table string) *TokenStore {
	return &TokenStore{
		table:  table,
		tokens: map[string]*models.AccessToken{},
	}
}

// Get retrieves a token record.
func (s *TokenStore) Get(ctx context.Context, token string) (*models.AccessToken, error) {
	if token == "" {
		return nil, repositories.NewStoreError("get", s.table, "", repositories.ErrInvalidKey)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.tokens[token]
	if !ok {
		return nil, repositories.NotFoundError(s.table, token)
	}
	dup := *record
	return &dup, nil
}

// Put stores a token record.
func (s *TokenStore) Put(ctx context.Context, token *models.AccessToken) error {
	if token.Token == "" {
		return repositories.NewStoreError("put", s.table, "", repositories.ErrInvalidKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dup := *token
	s.tokens[token.Token] = &dup
	return nil
}

// StudentStore is an in-memory repositories.StudentStore.
type StudentStore struct {
	mu       sync.RWMutex
	table    string
	students map[string]*models.Student
}

// NewStudentStore creates an empty in-memory student store.
func NewStudentStore(table string) *StudentStore {
	return &StudentStore{
		table:    table,
		students: map[string]*models.Student{},
	}
}

// GetByEmail retrieves a student by email within a tenant.
func (s *StudentStore) GetByEmail(ctx context.Context, tenantID, email string) (*models.Student, error) {
	if tenantID == "" || email == "" {
		return nil, repositories.NewStoreError("query", s.table, "", repositories.ErrInvalidKey)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, student := range s.students {
		if student.TenantID == tenantID && student.StudentEmail == email {
			dup := *student
			return &dup, nil
		}
	}
	return nil, repositories.NotFoundError(s.table, email)
}

// Put stores a student record.
func (s *StudentStore) Put(ctx context.Context, student *models.Student) error {
	if student.TenantID == "" || student.StudentID == "" {
		return repositories.NewStoreError("put", s.table, "", repositories.ErrInvalidKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dup := *student
	s.students[student.TenantID+"/"+student.StudentID] = &dup
	return nil
}

// TransactionStore is an in-memory repositories.TransactionStore.
type TransactionStore struct {
	mu    sync.Mutex
	table string
	txs   []*models.Transaction
}

// NewTransactionStore creates an empty in-memory transaction store.
func NewTransactionStore(table string) *TransactionStore {
	return &TransactionStore{table: table}
}

// Put appends a transaction record.
func (s *TransactionStore) Put(ctx context.Context, tx *models.Transaction) error {
	if tx.TenantID == "" || tx.TransactionID == "" {
		return repositories.NewStoreError("put", s.table, "", repositories.ErrInvalidKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dup := *tx
	s.txs = append(s.txs, &dup)
	return nil
}

// Transactions returns a snapshot of the recorded transactions, oldest
// first.
func (s *TransactionStore) Transactions() []*models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}
