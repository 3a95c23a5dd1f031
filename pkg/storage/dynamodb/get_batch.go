package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/storage"
)

const batchNumberIndex = "batch_number-index"

// GetBatch retrieves a batch from DynamoDB by its ID.
func (s *Store) GetBatch(ctx context.Context, batchID string) (*models.Batch, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": batchID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.BatchesTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrBatchNotFound
	}

	var batch models.Batch
	if err := attributevalue.UnmarshalMap(result.Item, &batch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch: %w", err)
	}

	return &batch, nil
}

// GetBatchByNumber retrieves a batch by its generated batch number.
func (s *Store) GetBatchByNumber(ctx context.Context, batchNumber string) (*models.Batch, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.BatchesTableName),
		IndexName:              aws.String(batchNumberIndex),
		KeyConditionExpression: aws.String("batch_number = :number"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":number": &types.AttributeValueMemberS{Value: batchNumber},
		},
		Limit: aws.Int32(1),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query batch by number: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, storage.ErrBatchNotFound
	}

	var batch models.Batch
	if err := attributevalue.UnmarshalMap(result.Items[0], &batch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch: %w", err)
	}

	return &batch, nil
}
