package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"rockie-classroom-api/internal/models"
	"rockie-classroom-api/internal/repositories"
)

// TransactionStore implements repositories.TransactionStore against the
// purchase-audit table.
type TransactionStore struct {
	client API
	table  string
}

// NewTransactionStore creates a transaction store bound to the given table.
func NewTransactionStore(client API, table string) *TransactionStore {
	return &TransactionStore{
		client: client,
		table:  table,
	}
}

// Put appends a transaction record.
func (s *TransactionStore) Put(ctx context.Context, tx *models.Transaction) error {
	if tx.TenantID == "" || tx.TransactionID == "" {
		return repositories.NewStoreError("put", s.table, "", repositories.ErrInvalidKey)
	}

	item, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return repositories.NewStoreError("put", s.table, tx.TransactionID, fmt.Errorf("marshal transaction: %w", err))
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return repositories.ConnectionError("put", s.table, err)
	}
	return nil
}
