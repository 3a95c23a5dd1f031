package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/rtgspay/settlement-engine/pkg/models"
)

// batchGSI1PK is the constant partition key that makes all batches queryable
// by scheduled time on a single GSI.
const batchGSI1PK = "BATCHES"

// CreateBatch persists a new batch record in CREATED state.
func (s *Store) CreateBatch(ctx context.Context, batch *models.Batch) (*models.Batch, error) {
	batch.GSI1PK = batchGSI1PK

	batchAV, err := attributevalue.MarshalMap(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.BatchesTableName),
		Item:                batchAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to persist batch: %w", err)
	}

	return batch, nil
}
