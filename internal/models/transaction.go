package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction represents one completed purchase of a purchasable item by a
// student. Transactions are append-only audit records.
type Transaction struct {
	TenantID      string  `json:"tenant_id" dynamodbav:"tenant_id"`
	TransactionID string  `json:"transaction_id" dynamodbav:"transaction_id"`
	StudentID     string  `json:"student_id" dynamodbav:"student_id"`
	ItemID        string  `json:"item_id" dynamodbav:"item_id"`
	Amount        float64 `json:"amount" dynamodbav:"amount"`
	CreatedAt     string  `json:"created_at" dynamodbav:"created_at"`
}

// BuyItemRequest is the body accepted when purchasing an item. The buyer is
// always the resolved student; only the item is named explicitly.
type BuyItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// NewTransaction records a purchase at the current instant.
func NewTransaction(tenantID, studentID, itemID string, amount float64) *Transaction {
	return &Transaction{
		TenantID:      tenantID,
		TransactionID: uuid.New().String(),
		StudentID:     studentID,
		ItemID:        itemID,
		Amount:        amount,
		CreatedAt:     time.Now().UTC().Format(TimestampLayout),
	}
}
