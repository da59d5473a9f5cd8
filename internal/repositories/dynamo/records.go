package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"rockie-classroom-api/internal/models"
	"rockie-classroom-api/internal/repositories"
)

// RecordStore implements repositories.RecordStore against one DynamoDB
// table with partition key tenant_id and sort key entity_id.
type RecordStore struct {
	client API
	table  string
}

// NewRecordStore creates a record store bound to the given table.
func NewRecordStore(client API, table string) *RecordStore {
	return &RecordStore{
		client: client,
		table:  table,
	}
}

func recordKey(tenantID, entityID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"tenant_id": &types.AttributeValueMemberS{Value: tenantID},
		"entity_id": &types.AttributeValueMemberS{Value: entityID},
	}
}

func compositeKey(tenantID, entityID string) string {
	return tenantID + "/" + entityID
}

// Get retrieves a record by its composite key.
func (s *RecordStore) Get(ctx context.Context, tenantID, entityID string) (*models.Record, error) {
	if tenantID == "" || entityID == "" {
		return nil, repositories.NewStoreError("get", s.table, compositeKey(tenantID, entityID), repositories.ErrInvalidKey)
	}

	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       recordKey(tenantID, entityID),
	})
	if err != nil {
		return nil, repositories.ConnectionError("get", s.table, err)
	}
	if resp.Item == nil {
		return nil, repositories.NotFoundError(s.table, compositeKey(tenantID, entityID))
	}

	record := &models.Record{}
	if err := attributevalue.UnmarshalMap(resp.Item, record); err != nil {
		return nil, repositories.NewStoreError("get", s.table, compositeKey(tenantID, entityID), fmt.Errorf("unmarshal record: %w", err))
	}
	return record, nil
}

// Put creates a new record. The write is conditional on the key not existing
// so that concurrent creates for the same key cannot both succeed.
func (s *RecordStore) Put(ctx context.Context, record *models.Record) error {
	if record.TenantID == "" || record.EntityID == "" {
		return repositories.NewStoreError("put", s.table, "", repositories.ErrInvalidKey)
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return repositories.NewStoreError("put", s.table, compositeKey(record.TenantID, record.EntityID), fmt.Errorf("marshal record: %w", err))
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(tenant_id) AND attribute_not_exists(entity_id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return repositories.DuplicateError(s.table, compositeKey(record.TenantID, record.EntityID))
		}
		return repositories.ConnectionError("put", s.table, err)
	}
	return nil
}

// Update replaces an existing record in place, conditional on the key
// existing. The caller fetched and mutated the record beforehand; the last
// write wins between concurrent updates.
func (s *RecordStore) Update(ctx context.Context, record *models.Record) error {
	if record.TenantID == "" || record.EntityID == "" {
		return repositories.NewStoreError("update", s.table, "", repositories.ErrInvalidKey)
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return repositories.NewStoreError("update", s.table, compositeKey(record.TenantID, record.EntityID), fmt.Errorf("marshal record: %w", err))
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(tenant_id) AND attribute_exists(entity_id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return repositories.NotFoundError(s.table, compositeKey(record.TenantID, record.EntityID))
		}
		return repositories.ConnectionError("update", s.table, err)
	}
	return nil
}

// Delete removes a record, conditional on it existing so that a repeated
// delete reports not-found instead of silently succeeding.
func (s *RecordStore) Delete(ctx context.Context, tenantID, entityID string) error {
	if tenantID == "" || entityID == "" {
		return repositories.NewStoreError("delete", s.table, compositeKey(tenantID, entityID), repositories.ErrInvalidKey)
	}

	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.table),
		Key:                 recordKey(tenantID, entityID),
		ConditionExpression: aws.String("attribute_exists(tenant_id) AND attribute_exists(entity_id)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return repositories.NotFoundError(s.table, compositeKey(tenantID, entityID))
		}
		return repositories.ConnectionError("delete", s.table, err)
	}
	return nil
}

// ListByTenant retrieves every record in the tenant partition.
func (s *RecordStore) ListByTenant(ctx context.Context, tenantID string) ([]*models.Record, error) {
	if tenantID == "" {
		return nil, repositories.NewStoreError("query", s.table, "", repositories.ErrInvalidKey)
	}

	records := []*models.Record{}
	var startKey map[string]types.AttributeValue
	for {
		resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.table),
			KeyConditionExpression: aws.String("tenant_id = :tenant_id"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":tenant_id": &types.AttributeValueMemberS{Value: tenantID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, repositories.ConnectionError("query", s.table, err)
		}

		page := []*models.Record{}
		if err := attributevalue.UnmarshalListOfMaps(resp.Items, &page); err != nil {
			return nil, repositories.NewStoreError("query", s.table, tenantID, fmt.Errorf("unmarshal records: %w", err))
		}
		records = append(records, page...)

		if resp.LastEvaluatedKey == nil {
			break
		}
		startKey = resp.LastEvaluatedKey
	}
	return records, nil
}
