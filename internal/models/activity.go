package models

// CreateActivityRequest is the body accepted when recording a new activity.
// ActivityID is optional: when absent the server generates one.
type CreateActivityRequest struct {
	ActivityID   string `json:"activity_id"`
	ActivityType string `json:"activity_type" validate:"required"`
	Time         int64  `json:"time" validate:"gte=0"`
}

// UpdateActivityRequest is the body accepted when updating an activity.
// Absent fields keep their current values.
type UpdateActivityRequest struct {
	ActivityType *string `json:"activity_type,omitempty"`
	Time         *int64  `json:"time,omitempty" validate:"omitempty,gte=0"`
}

// NewActivityRecord builds the stored record for a create request. The
// activity is tagged with the resolved student so only its owner may change
// it later.
func (req *CreateActivityRequest) NewActivityRecord(tenantID, studentID string) *Record {
	record := NewRecord(EntityTypeActivity, tenantID, studentID)
	if req.ActivityID != "" {
		record.EntityID = req.ActivityID
	}
	record.Payload["activity_type"] = req.ActivityType
	record.Payload["time"] = req.Time
	return record
}

// ApplyTo merges the update into an existing activity record.
func (req *UpdateActivityRequest) ApplyTo(record *Record) {
	if record.Payload == nil {
		record.Payload = map[string]interface{}{}
	}
	if req.ActivityType != nil {
		record.Payload["activity_type"] = *req.ActivityType
	}
	if req.Time != nil {
		record.Payload["time"] = *req.Time
	}
}
