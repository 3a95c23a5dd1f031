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

// EnrollTransaction atomically appends a transaction to a batch and moves the
// transaction to PROCESSING. Both writes are conditional: the batch must still
// be CREATED at the version the caller read, and the transaction must still be
// INITIATED or VALIDATED. If two callers race to enroll the same transaction,
// exactly one of these writes commits.
func (s *Store) EnrollTransaction(ctx context.Context, batch *models.Batch, tx *models.Transaction) error {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	amountAV, err := attributevalue.Marshal(tx.Details.Amount)
	if err != nil {
		return fmt.Errorf("failed to marshal amount: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: append the transaction id and bump the batch totals.
				Update: &types.Update{
					TableName: aws.String(s.BatchesTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: batch.Id},
					},
					UpdateExpression: aws.String("SET transaction_ids = list_append(transaction_ids, :txid), " +
						"transaction_count = transaction_count + :one, " +
						"total_amount = total_amount + :amount, " +
						"version = version + :one, updated_at = :now"),
					ConditionExpression: aws.String("#status = :created AND version = :version"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":txid":    &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: tx.Id}}},
						":one":     &types.AttributeValueMemberN{Value: "1"},
						":amount":  amountAV,
						":created": &types.AttributeValueMemberS{Value: string(models.BatchCreated)},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", batch.Version)},
						":now":     nowAV,
					},
				},
			},
			{
				// Operation 2: CAS the transaction into PROCESSING.
				Update: &types.Update{
					TableName: aws.String(s.TransactionsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: tx.Id},
					},
					UpdateExpression:    aws.String("SET #status = :processing, updated_at = :now"),
					ConditionExpression: aws.String("#status IN (:validated, :initiated)"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":processing": &types.AttributeValueMemberS{Value: string(models.PROCESSING)},
						":validated":  &types.AttributeValueMemberS{Value: string(models.VALIDATED)},
						":initiated":  &types.AttributeValueMemberS{Value: string(models.INITIATED)},
						":now":        nowAV,
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for i, reason := range tce.CancellationReasons {
				if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
					continue
				}
				if i == 0 {
					return storage.ErrBatchNotOpen
				}
				return storage.ErrTransactionNotEnrollable
			}
		}
		return fmt.Errorf("failed to execute enrollment transaction: %w", err)
	}

	return nil
}
