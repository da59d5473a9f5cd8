package models

// CreateRewardRequest is the body accepted when granting a reward.
// Experience is a pointer so that an explicit zero grant is distinguishable
// from an absent field.
type CreateRewardRequest struct {
	RewardName string `json:"reward_name" validate:"required"`
	Experience *int64 `json:"experience" validate:"required"`
	ActivityID string `json:"activity_id"`
}

// UpdateRewardRequest is the body accepted when updating a reward. Absent
// fields keep their current values.
type UpdateRewardRequest struct {
	RewardName *string `json:"reward_name,omitempty"`
	Experience *int64  `json:"experience,omitempty"`
	ActivityID *string `json:"activity_id,omitempty"`
}

// NewRewardRecord builds the stored record for a create request. Reward IDs
// are always server-generated.
func (req *CreateRewardRequest) NewRewardRecord(tenantID, studentID string) *Record {
	record := NewRecord(EntityTypeReward, tenantID, studentID)
	record.Payload["reward_name"] = req.RewardName
	record.Payload["experience"] = *req.Experience
	if req.ActivityID != "" {
		record.Payload["activity_id"] = req.ActivityID
	}
	return record
}

// ApplyTo merges the update into an existing reward record.
func (req *UpdateRewardRequest) ApplyTo(record *Record) {
	if record.Payload == nil {
		record.Payload = map[string]interface{}{}
	}
	if req.RewardName != nil {
		record.Payload["reward_name"] = *req.RewardName
	}
	if req.Experience != nil {
		record.Payload["experience"] = *req.Experience
	}
	if req.ActivityID != nil {
		record.Payload["activity_id"] = *req.ActivityID
	}
}
