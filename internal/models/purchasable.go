package models

// CreatePurchasableRequest is the body accepted when listing a new
// purchasable item. Purchasables are tenant-shared catalog entries and carry
// no ownership tag.
type CreatePurchasableRequest struct {
	ItemID string  `json:"item_id"`
	Name   string  `json:"name" validate:"required"`
	Price  float64 `json:"price" validate:"gte=0"`
	Stock  int     `json:"stock" validate:"gte=0"`
}

// UpdatePurchasableRequest is the body accepted when updating a purchasable.
// Absent fields keep their current values.
type UpdatePurchasableRequest struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

// NewPurchasableRecord builds the stored record for a create request.
func (req *CreatePurchasableRequest) NewPurchasableRecord(tenantID string) *Record {
	record := NewRecord(EntityTypePurchasable, tenantID, "")
	if req.ItemID != "" {
		record.EntityID = req.ItemID
	}
	record.Payload["name"] = req.Name
	record.Payload["price"] = req.Price
	record.Payload["stock"] = req.Stock
	return record
}

// ApplyTo merges the update into an existing purchasable record.
func (req *UpdatePurchasableRequest) ApplyTo(record *Record) {
	if record.Payload == nil {
		record.Payload = map[string]interface{}{}
	}
	if req.Name != nil {
		record.Payload["name"] = *req.Name
	}
	if req.Price != nil {
		record.Payload["price"] = *req.Price
	}
	if req.Stock != nil {
		record.Payload["stock"] = *req.Stock
	}
}
