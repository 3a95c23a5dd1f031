package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rtgspay/settlement-engine/pkg/models"
)

const (
	batchStatusGSI    = "status-scheduled_at-index"
	batchScheduledGSI = "gsi1pk-scheduled_at-index"
)

// ListBatchesByStatus retrieves all batches currently in the given status,
// ordered by scheduled time.
func (s *Store) ListBatchesByStatus(ctx context.Context, status models.BatchStatus) ([]models.Batch, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.BatchesTableName),
		IndexName:              aws.String(batchStatusGSI),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches by status: %w", err)
	}

	var batches []models.Batch
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &batches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batches: %w", err)
	}

	return batches, nil
}

// ListBatchesByDateRange retrieves batches scheduled within [from, to).
func (s *Store) ListBatchesByDateRange(ctx context.Context, from, to time.Time) ([]models.Batch, error) {
	fromStr, err := from.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal range start: %w", err)
	}
	toStr, err := to.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal range end: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.BatchesTableName),
		IndexName:              aws.String(batchScheduledGSI),
		KeyConditionExpression: aws.String("gsi1pk = :pk AND scheduled_at BETWEEN :from AND :to"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":   &types.AttributeValueMemberS{Value: batchGSI1PK},
			":from": &types.AttributeValueMemberS{Value: string(fromStr)},
			":to":   &types.AttributeValueMemberS{Value: string(toStr)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches by date range: %w", err)
	}

	var batches []models.Batch
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &batches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batches: %w", err)
	}

	return batches, nil
}
