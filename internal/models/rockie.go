package models

// Accessory slot names on a rockie. Every rockie carries all slots; empty
// slots hold nil.
var rockieAccessorySlots = []string{
	"head_accessory",
	"arms_accessory",
	"body_accessory",
	"face_accessory",
	"background_accessory",
}

// Default values seeded into a freshly created rockie.
const (
	DefaultRockieName      = "DefaultRockie"
	DefaultRockieEvolution = "Stage 0"
)

// CreateRockieRequest is the body accepted when creating a student's rockie.
// All fields are optional; defaults are seeded for anything absent. Each
// student has at most one rockie, so the record is keyed by student ID.
type CreateRockieRequest struct {
	RockieName string `json:"rockie_name"`
	Experience int64  `json:"experience" validate:"gte=0"`
	Level      int64  `json:"level" validate:"gte=0"`
	Evolution  string `json:"evolution"`
}

// UpdateRockieRequest is the body accepted when updating a rockie. Absent
// fields keep their current values. Accessories replaces the named slots
// only; Coins adjusts the spendable balance absolutely.
type UpdateRockieRequest struct {
	RockieName  *string            `json:"rockie_name,omitempty"`
	Experience  *int64             `json:"experience,omitempty" validate:"omitempty,gte=0"`
	Level       *int64             `json:"level,omitempty" validate:"omitempty,gte=0"`
	Evolution   *string            `json:"evolution,omitempty"`
	Coins       *int64             `json:"coins,omitempty" validate:"omitempty,gte=0"`
	Accessories map[string]*string `json:"accessories,omitempty"`
}

// NewRockieRecord builds the stored record for a create request. The entity
// ID is the owning student's ID: the one-rockie-per-student rule falls out of
// the (tenant_id, entity_id) uniqueness constraint.
func (req *CreateRockieRequest) NewRockieRecord(tenantID, studentID string) *Record {
	record := NewRecord(EntityTypeRockie, tenantID, studentID)
	record.EntityID = studentID

	name := req.RockieName
	if name == "" {
		name = DefaultRockieName
	}
	evolution := req.Evolution
	if evolution == "" {
		evolution = DefaultRockieEvolution
	}
	level := req.Level
	if level == 0 {
		level = 1
	}

	adorned := map[string]interface{}{}
	for _, slot := range rockieAccessorySlots {
		adorned[slot] = nil
	}

	record.Payload["rockie_name"] = name
	record.Payload["experience"] = req.Experience
	record.Payload["level"] = level
	record.Payload["evolution"] = evolution
	record.Payload["coins"] = int64(0)
	record.Payload["rockie_adorned"] = adorned
	record.Payload["rockie_all_accessories_ids"] = []string{}
	return record
}

// ApplyTo merges the update into an existing rockie record.
func (req *UpdateRockieRequest) ApplyTo(record *Record) {
	if record.Payload == nil {
		record.Payload = map[string]interface{}{}
	}
	if req.RockieName != nil {
		record.Payload["rockie_name"] = *req.RockieName
	}
	if req.Experience != nil {
		record.Payload["experience"] = *req.Experience
	}
	if req.Level != nil {
		record.Payload["level"] = *req.Level
	}
	if req.Evolution != nil {
		record.Payload["evolution"] = *req.Evolution
	}
	if req.Coins != nil {
		record.Payload["coins"] = *req.Coins
	}
	if len(req.Accessories) > 0 {
		adorned, _ := record.Payload["rockie_adorned"].(map[string]interface{})
		if adorned == nil {
			adorned = map[string]interface{}{}
		}
		for slot, accessory := range req.Accessories {
			if accessory == nil {
				adorned[slot] = nil
			} else {
				adorned[slot] = *accessory
			}
		}
		record.Payload["rockie_adorned"] = adorned
	}
}
