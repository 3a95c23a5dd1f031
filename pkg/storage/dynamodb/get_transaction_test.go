package dynamodb

import (
	"context"
	"testing"

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

func TestGetTransaction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		tx := models.Transaction{Id: "tx-1", Status: models.INITIATED, ReferenceNumber: "RTGS20240604abcdef12"}
		txAV, _ := attributevalue.MarshalMap(tx)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: txAV}, nil)

		result, err := store.GetTransaction(context.Background(), "tx-1")

		require.NoError(t, err)
		assert.Equal(t, "tx-1", result.Id)
		assert.Equal(t, models.INITIATED, result.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetTransaction(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrTransactionNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestGetBatchByNumber(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, BatchesTableName: "batches"}

		batch := models.Batch{Id: "batch-1", BatchNumber: "RTGSB202406041015-a1b2c3", Status: models.BatchCreated}
		batchAV, _ := attributevalue.MarshalMap(batch)
		mockClient.On("Query", mock.Anything, mock.Anything).Once().Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{batchAV}}, nil)

		result, err := store.GetBatchByNumber(context.Background(), "RTGSB202406041015-a1b2c3")

		require.NoError(t, err)
		assert.Equal(t, "batch-1", result.Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, BatchesTableName: "batches"}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

		_, err := store.GetBatchByNumber(context.Background(), "RTGSB209912312359-zzzzzz")

		assert.ErrorIs(t, err, storage.ErrBatchNotFound)
		mockClient.AssertExpectations(t)
	})
}
