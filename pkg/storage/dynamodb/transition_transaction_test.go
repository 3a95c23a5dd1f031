package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/storage"
	"github.com/rtgspay/settlement-engine/pkg/storage/dynamodb/mocks"
)

func TestTransitionTransaction(t *testing.T) {
	t.Run("Success With UTR", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		updated := models.Transaction{Id: "tx-1", Status: models.PENDING_SETTLEMENT, UTRNumber: "UTR123"}
		updatedAV, _ := attributevalue.MarshalMap(updated)

		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			return *input.ConditionExpression == "attribute_exists(id) AND #status = :from"
		})).Once().Return(&dynamodb.UpdateItemOutput{Attributes: updatedAV}, nil)

		utr := "UTR123"
		result, err := store.TransitionTransaction(context.Background(), "tx-1",
			models.PROCESSING, models.PENDING_SETTLEMENT, &storage.TransactionUpdate{UTRNumber: &utr})

		require.NoError(t, err)
		assert.Equal(t, models.PENDING_SETTLEMENT, result.Status)
		assert.Equal(t, "UTR123", result.UTRNumber)
		mockClient.AssertExpectations(t)
	})

	t.Run("Conditional Check Failed Maps To Status Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional check failed")})

		_, err := store.TransitionTransaction(context.Background(), "tx-1", models.VALIDATED, models.PROCESSING, nil)

		assert.ErrorIs(t, err, storage.ErrStatusConflict)
		mockClient.AssertExpectations(t)
	})

	t.Run("Forbidden Edge Is Refused Before The Write", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		_, err := store.TransitionTransaction(context.Background(), "tx-1", models.INITIATED, models.FAILED, nil)

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
		mockClient.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
	})

	t.Run("Infrastructure Failure", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

		_, err := store.TransitionTransaction(context.Background(), "tx-1", models.VALIDATED, models.PROCESSING, nil)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrStatusConflict)
		mockClient.AssertExpectations(t)
	})
}

func TestTransitionBatch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, BatchesTableName: "batches"}

		updated := models.Batch{Id: "batch-1", Status: models.BatchProcessing, Version: 4}
		updatedAV, _ := attributevalue.MarshalMap(updated)

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.UpdateItemOutput{Attributes: updatedAV}, nil)

		result, err := store.TransitionBatch(context.Background(), "batch-1", models.BatchCreated, models.BatchProcessing)

		require.NoError(t, err)
		assert.Equal(t, models.BatchProcessing, result.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Forbidden Edge Is Refused Before The Write", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, BatchesTableName: "batches"}

		_, err := store.TransitionBatch(context.Background(), "batch-1", models.BatchSent, models.BatchProcessing)

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
		mockClient.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
	})

	t.Run("Second Caller Loses The CAS", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, BatchesTableName: "batches"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional check failed")})

		_, err := store.TransitionBatch(context.Background(), "batch-1", models.BatchCreated, models.BatchProcessing)

		assert.ErrorIs(t, err, storage.ErrStatusConflict)
		mockClient.AssertExpectations(t)
	})
}
