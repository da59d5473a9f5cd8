package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"rockie-classroom-api/internal/auth"
	"rockie-classroom-api/internal/models"
	"rockie-classroom-api/internal/repositories"
)

// Purchase failures a caller may see.
var (
	ErrOutOfStock        = errors.New("item out of stock")
	ErrInsufficientFunds = errors.New("insufficient balance")
)

// PurchaseService lets a student spend rockie coins on a purchasable item.
type PurchaseService interface {
	// Buy decrements item stock and the buyer's coin balance, then records a
	// transaction. The three writes are independent single-item operations;
	// concurrent purchases of the last unit can both succeed. The audit
	// record makes the sequence reconcilable after the fact.
	Buy(ctx context.Context, identity auth.Identity, req *models.BuyItemRequest) (*models.Transaction, error)
}

// purchaseService implements the PurchaseService interface
type purchaseService struct {
	purchasables repositories.RecordStore
	rockies      repositories.RecordStore
	transactions repositories.TransactionStore
	logger       *logrus.Logger
}

// NewPurchaseService creates a new purchase service instance
func NewPurchaseService(purchasables, rockies repositories.RecordStore, transactions repositories.TransactionStore, logger *logrus.Logger) PurchaseService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &purchaseService{
		purchasables: purchasables,
		rockies:      rockies,
		transactions: transactions,
		logger:       logger,
	}
}

// Buy performs the purchase sequence: stock check, balance check, two
// decrements, one audit record.
func (s *purchaseService) Buy(ctx context.Context, identity auth.Identity, req *models.BuyItemRequest) (*models.Transaction, error) {
	item, err := s.purchasables.Get(ctx, identity.TenantID, req.ItemID)
	if err != nil {
		return nil, err
	}

	stock := payloadInt(item.Payload, "stock")
	if stock <= 0 {
		return nil, ErrOutOfStock
	}
	price := payloadNumber(item.Payload, "price")

	rockie, err := s.rockies.Get(ctx, identity.TenantID, identity.SubjectID)
	if err != nil {
		return nil, err
	}

	coins := payloadNumber(rockie.Payload, "coins")
	if coins < price {
		return nil, ErrInsufficientFunds
	}

	item.Payload["stock"] = stock - 1
	if err := s.purchasables.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}

	rockie.Payload["coins"] = int64(coins - price)
	if err := s.rockies.Update(ctx, rockie); err != nil {
		return nil, fmt.Errorf("deduct coins: %w", err)
	}

	tx := models.NewTransaction(identity.TenantID, identity.SubjectID, req.ItemID, price)
	if err := s.transactions.Put(ctx, tx); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id":      identity.TenantID,
		"student_id":     identity.SubjectID,
		"item_id":        req.ItemID,
		"transaction_id": tx.TransactionID,
	}).Info("Purchase completed")

	return tx, nil
}

// payloadNumber reads a numeric payload field. JSON decoding yields float64,
// attributevalue yields typed integers; both are accepted.
func payloadNumber(payload map[string]interface{}, key string) float64 {
	switch v := payload[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// payloadInt reads an integer payload field.
func payloadInt(payload map[string]interface{}, key string) int64 {
	return int64(payloadNumber(payload, key))
}
