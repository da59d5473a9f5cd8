package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"rockie-classroom-api/internal/models"
	"rockie-classroom-api/internal/repositories"
)

// TokenStore implements repositories.TokenStore against the access-token
// table, keyed by the opaque token string.
type TokenStore struct {
	client API
	table  string
}

// NewTokenStore creates a token store bound to the given table.
func NewTokenStore(client API, table string) *TokenStore {
	return &TokenStore{
		client: client,
		table:  table,
	}
}

// Get retrieves a token record by its primary key.
func (s *TokenStore) Get(ctx context.Context, token string) (*models.AccessToken, error) {
	if token == "" {
		return nil, repositories.NewStoreError("get", s.table, "", repositories.ErrInvalidKey)
	}

	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"token": &types.AttributeValueMemberS{Value: token},
		},
	})
	if err != nil {
		return nil, repositories.ConnectionError("get", s.table, err)
	}
	if resp.Item == nil {
		return nil, repositories.NotFoundError(s.table, token)
	}

	record := &models.AccessToken{}
	if err := attributevalue.UnmarshalMap(resp.Item, record); err != nil {
		return nil, repositories.NewStoreError("get", s.table, token, fmt.Errorf("unmarshal token: %w", err))
	}
	return record, nil
}

// Put stores a freshly issued token.
func (s *TokenStore) Put(ctx context.Context, token *models.AccessToken) error {
	if token.Token == "" {
		return repositories.NewStoreError("put", s.table, "", repositories.ErrInvalidKey)
	}

	item, err := attributevalue.MarshalMap(token)
	if err != nil {
		return repositories.NewStoreError("put", s.table, token.Token, fmt.Errorf("marshal token: %w", err))
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return repositories.ConnectionError("put", s.table, err)
	}
	return nil
}
