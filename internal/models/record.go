package models

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the storage format for creation and expiry timestamps.
// It matches the format already present in the deployed tables.
const TimestampLayout = "2006-01-02 15:04:05"

// EntityType discriminates the business object families stored through the
// generic record store.
type EntityType string

const (
	EntityTypeActivity    EntityType = "activity"
	EntityTypePurchasable EntityType = "purchasable"
	EntityTypeReward      EntityType = "reward"
	EntityTypeRockie      EntityType = "rockie"
)

// Record represents one tenant-scoped business object. The composite key
// (tenant_id, entity_id) uniquely identifies a record within its table.
// StudentID is an optional ownership tag: when set, only the owning student
// may mutate or delete the record.
type Record struct {
	TenantID   string                 `json:"tenant_id" dynamodbav:"tenant_id" validate:"required"`
	EntityID   string                 `json:"entity_id" dynamodbav:"entity_id" validate:"required"`
	StudentID  string                 `json:"student_id,omitempty" dynamodbav:"student_id,omitempty"`
	EntityType EntityType             `json:"entity_type" dynamodbav:"entity_type" validate:"required"`
	CreatedAt  string                 `json:"created_at" dynamodbav:"created_at"`
	Payload    map[string]interface{} `json:"payload,omitempty" dynamodbav:"payload,omitempty"`
}

// NewRecord creates a record with a generated entity ID and creation
// timestamp. Callers that accept client-supplied IDs overwrite EntityID
// before storing.
func NewRecord(entityType EntityType, tenantID, studentID string) *Record {
	return &Record{
		TenantID:   tenantID,
		EntityID:   uuid.New().String(),
		StudentID:  studentID,
		EntityType: entityType,
		CreatedAt:  time.Now().UTC().Format(TimestampLayout),
		Payload:    map[string]interface{}{},
	}
}

// OwnedBy reports whether the given student may mutate this record. Records
// without an ownership tag are tenant-shared and writable by any student of
// the tenant.
func (r *Record) OwnedBy(studentID string) bool {
	return r.StudentID == "" || r.StudentID == studentID
}

// Clone returns a deep copy of the record. Stores hand out clones so callers
// cannot mutate stored state in place.
func (r *Record) Clone() *Record {
	dup := *r
	dup.Payload = clonePayload(r.Payload)
	return &dup
}

func clonePayload(src map[string]interface{}) map[string]interface{} {
	if src == nil {
		return nil
	}
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		if nested, ok := v.(map[string]interface{}); ok {
			dst[k] = clonePayload(nested)
			continue
		}
		dst[k] = v
	}
	return dst
}
