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

// EmailIndex is the global secondary index used to look students up by
// email within a tenant.
const EmailIndex = "student_email_index"

// StudentStore implements repositories.StudentStore against the student
// table.
type StudentStore struct {
	client API
	table  string
}

// NewStudentStore creates a student store bound to the given table.
func NewStudentStore(client API, table string) *StudentStore {
	return &StudentStore{
		client: client,
		table:  table,
	}
}

// GetByEmail retrieves a student by email within a tenant via the email GSI.
func (s *StudentStore) GetByEmail(ctx context.Context, tenantID, email string) (*models.Student, error) {
	if tenantID == "" || email == "" {
		return nil, repositories.NewStoreError("query", s.table, "", repositories.ErrInvalidKey)
	}

	resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(EmailIndex),
		KeyConditionExpression: aws.String("tenant_id = :tenant_id AND student_email = :student_email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tenant_id":     &types.AttributeValueMemberS{Value: tenantID},
			":student_email": &types.AttributeValueMemberS{Value: email},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, repositories.ConnectionError("query", s.table, err)
	}
	if len(resp.Items) == 0 {
		return nil, repositories.NotFoundError(s.table, email)
	}

	student := &models.Student{}
	if err := attributevalue.UnmarshalMap(resp.Items[0], student); err != nil {
		return nil, repositories.NewStoreError("query", s.table, email, fmt.Errorf("unmarshal student: %w", err))
	}
	return student, nil
}

// Put stores a student record.
func (s *StudentStore) Put(ctx context.Context, student *models.Student) error {
	if student.TenantID == "" || student.StudentID == "" {
		return repositories.NewStoreError("put", s.table, "", repositories.ErrInvalidKey)
	}

	item, err := attributevalue.MarshalMap(student)
	if err != nil {
		return repositories.NewStoreError("put", s.table, student.StudentID, fmt.Errorf("marshal student: %w", err))
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return repositories.ConnectionError("put", s.table, err)
	}
	return nil
}
