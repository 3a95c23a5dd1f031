package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/storage"
	"github.com/rtgspay/settlement-engine/pkg/storage/dynamodb/mocks"
)

func TestEnrollTransaction(t *testing.T) {
	batch := &models.Batch{Id: "batch-1", Status: models.BatchCreated, Version: 3}
	tx := &models.Transaction{Id: "tx-1", Status: models.VALIDATED, Details: models.PaymentDetails{Amount: 500_000}}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, BatchesTableName: "batches", TransactionsTableName: "transactions"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.EnrollTransaction(context.Background(), batch, tx)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Batch No Longer Open", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, BatchesTableName: "batches", TransactionsTableName: "transactions"}

		reasons := []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		err := store.EnrollTransaction(context.Background(), batch, tx)

		assert.ErrorIs(t, err, storage.ErrBatchNotOpen)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transaction Already Claimed", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, BatchesTableName: "batches", TransactionsTableName: "transactions"}

		// The batch update passes but the transaction status CAS loses.
		reasons := []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		err := store.EnrollTransaction(context.Background(), batch, tx)

		assert.ErrorIs(t, err, storage.ErrTransactionNotEnrollable)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transaction Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, BatchesTableName: "batches", TransactionsTableName: "transactions"}

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("transaction failed"))

		err := store.EnrollTransaction(context.Background(), batch, tx)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute enrollment transaction")
		mockClient.AssertExpectations(t)
	})
}
