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

// TransitionTransaction atomically updates the transaction status from the
// expected prior value to the next one. The ConditionExpression rejects the
// write if another caller has already moved the status, which is the
// single-writer guarantee the enrollment and settlement paths rely on.
func (s *Store) TransitionTransaction(ctx context.Context, txID string, from, to models.TransactionStatus, update *storage.TransactionUpdate) (*models.Transaction, error) {
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("transaction %s -> %s: %w", from, to, storage.ErrInvalidTransition)
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	updateExpr := "SET #status = :to, updated_at = :now"
	exprValues := map[string]types.AttributeValue{
		":to":   &types.AttributeValueMemberS{Value: string(to)},
		":from": &types.AttributeValueMemberS{Value: string(from)},
		":now":  nowAV,
	}

	if update != nil {
		if update.UTRNumber != nil {
			updateExpr += ", utr_number = :utr"
			exprValues[":utr"] = &types.AttributeValueMemberS{Value: *update.UTRNumber}
		}
		if update.ReturnReason != nil {
			updateExpr += ", return_reason = :reason"
			exprValues[":reason"] = &types.AttributeValueMemberS{Value: *update.ReturnReason}
		}
		if update.ErrorMessage != nil {
			updateExpr += ", error_message = :errmsg"
			exprValues[":errmsg"] = &types.AttributeValueMemberS{Value: *update.ErrorMessage}
		}
		if update.ProcessedAt != nil {
			processedAV, err := attributevalue.Marshal(*update.ProcessedAt)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal processed_at: %w", err)
			}
			updateExpr += ", processed_at = :processed"
			exprValues[":processed"] = processedAV
		}
		if update.CompletedAt != nil {
			completedAV, err := attributevalue.Marshal(*update.CompletedAt)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal completed_at: %w", err)
			}
			updateExpr += ", completed_at = :completed"
			exprValues[":completed"] = completedAV
		}
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: txID},
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
		return nil, fmt.Errorf("failed to transition transaction %s to %s: %w", txID, to, err)
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Attributes, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated transaction: %w", err)
	}

	return &tx, nil
}
