package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/storage"
)

// TransitionBatch atomically updates the batch status from the expected prior
// value to the next one. A second caller racing the same transition loses the
// conditional check and gets ErrStatusConflict, which is the idempotency gate
// protecting against duplicate settlement submission.
func (s *Store) TransitionBatch(ctx context.Context, batchID string, from, to models.BatchStatus) (*models.Batch, error) {
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("batch %s -> %s: %w", from, to, storage.ErrInvalidTransition)
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	updateExpr := "SET #status = :to, version = version + :one, updated_at = :now"
	exprValues := map[string]types.AttributeValue{
		":to":   &types.AttributeValueMemberS{Value: string(to)},
		":from": &types.AttributeValueMemberS{Value: string(from)},
		":one":  &types.AttributeValueMemberN{Value: "1"},
		":now":  nowAV,
	}

	switch to {
	case models.BatchProcessing:
		updateExpr += ", processed_at = :now"
	case models.BatchSent, models.BatchFailed:
		updateExpr += ", completed_at = :now"
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.BatchesTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: batchID},
		},
		UpdateExpression:    aws.String(updateExpr),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :from"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: exprValues,
		ReturnValues:              types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrStatusConflict
		}
		return nil, fmt.Errorf("failed to transition batch %s to %s: %w", batchID, to, err)
	}

	var batch models.Batch
	if err := attributevalue.UnmarshalMap(result.Attributes, &batch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated batch: %w", err)
	}

	return &batch, nil
}
