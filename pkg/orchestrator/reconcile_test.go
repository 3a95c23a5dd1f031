package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/rtgs"
	"github.com/rtgspay/settlement-engine/pkg/storage"
)

func TestReconcileBatch(t *testing.T) {
	t.Run("ConfirmedSubmissionMovesToSent", func(t *testing.T) {
		svc, m, gateway := newTestServiceWithGateway(t)

		stuck := openBatch("tx-1")
		stuck.Status = models.BatchProcessing
		sent := openBatch("tx-1")
		sent.Status = models.BatchSent

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(stuck, nil)
		gateway.On("CheckBatchStatus", mock.Anything, stuck.BatchNumber).
			Return(&rtgs.BatchStatusResult{Found: true, RemoteStatus: "ACCEPTED"}, nil)
		m.batches.On("TransitionBatch", mock.Anything, "batch-1", models.BatchProcessing, models.BatchSent).
			Return(sent, nil)
		m.transactions.On("GetTransaction", mock.Anything, "tx-1").
			Return(&models.Transaction{Id: "tx-1", Status: models.PROCESSING}, nil)
		m.transactions.On("TransitionTransaction", mock.Anything, "tx-1", models.PROCESSING, models.PENDING_SETTLEMENT, mock.Anything).
			Return(&models.Transaction{Id: "tx-1", Status: models.PENDING_SETTLEMENT}, nil)
		m.audit.On("LogEvent", mock.Anything, mock.Anything).Return(nil)

		got, err := svc.ReconcileBatch(context.Background(), "batch-1")

		require.NoError(t, err)
		assert.Equal(t, models.BatchSent, got.Status)
	})

	t.Run("LostSubmissionMovesToFailed", func(t *testing.T) {
		svc, m, gateway := newTestServiceWithGateway(t)

		stuck := openBatch("tx-1")
		stuck.Status = models.BatchProcessing
		failed := openBatch("tx-1")
		failed.Status = models.BatchFailed

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(stuck, nil)
		gateway.On("CheckBatchStatus", mock.Anything, stuck.BatchNumber).
			Return(&rtgs.BatchStatusResult{Found: false}, nil)
		m.batches.On("TransitionBatch", mock.Anything, "batch-1", models.BatchProcessing, models.BatchFailed).
			Return(failed, nil)
		m.audit.On("LogEvent", mock.Anything, mock.Anything).Return(nil)

		got, err := svc.ReconcileBatch(context.Background(), "batch-1")

		require.NoError(t, err)
		assert.Equal(t, models.BatchFailed, got.Status)
		m.transactions.AssertNotCalled(t, "TransitionTransaction",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SettledTransactionCompletes", func(t *testing.T) {
		svc, m, gateway := newTestServiceWithGateway(t)

		sent := openBatch("tx-1")
		sent.Status = models.BatchSent
		pending := &models.Transaction{Id: "tx-1", Status: models.PENDING_SETTLEMENT, UTRNumber: "UTR123"}
		completed := &models.Transaction{Id: "tx-1", Status: models.COMPLETED, UTRNumber: "UTR123"}

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(sent, nil)
		m.transactions.On("GetTransaction", mock.Anything, "tx-1").Return(pending, nil)
		gateway.On("CheckTransactionStatus", mock.Anything, "UTR123").
			Return(&rtgs.TransactionStatusResult{Found: true, RemoteStatus: "SETTLED"}, nil)
		m.transactions.On("TransitionTransaction", mock.Anything, "tx-1", models.PENDING_SETTLEMENT, models.COMPLETED,
			mock.MatchedBy(func(u *storage.TransactionUpdate) bool {
				return u.CompletedAt != nil
			})).
			Return(completed, nil)
		m.audit.On("LogEvent", mock.Anything, mock.Anything).Return(nil)
		m.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := svc.ReconcileBatch(context.Background(), "batch-1")

		require.NoError(t, err)
	})

	t.Run("ReturnedTransactionRecordsReason", func(t *testing.T) {
		svc, m, gateway := newTestServiceWithGateway(t)

		sent := openBatch("tx-1")
		sent.Status = models.BatchSent
		pending := &models.Transaction{Id: "tx-1", Status: models.PENDING_SETTLEMENT, UTRNumber: "UTR123"}
		returned := &models.Transaction{Id: "tx-1", Status: models.RETURNED, UTRNumber: "UTR123"}

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(sent, nil)
		m.transactions.On("GetTransaction", mock.Anything, "tx-1").Return(pending, nil)
		gateway.On("CheckTransactionStatus", mock.Anything, "UTR123").
			Return(&rtgs.TransactionStatusResult{Found: true, RemoteStatus: "RETURNED"}, nil)
		m.transactions.On("TransitionTransaction", mock.Anything, "tx-1", models.PENDING_SETTLEMENT, models.RETURNED,
			mock.MatchedBy(func(u *storage.TransactionUpdate) bool {
				return u.ReturnReason != nil && *u.ReturnReason != ""
			})).
			Return(returned, nil)
		m.audit.On("LogEvent", mock.Anything, mock.Anything).Return(nil)
		m.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := svc.ReconcileBatch(context.Background(), "batch-1")

		require.NoError(t, err)
	})

	t.Run("InFlightTransactionLeftPending", func(t *testing.T) {
		svc, m, gateway := newTestServiceWithGateway(t)

		sent := openBatch("tx-1")
		sent.Status = models.BatchSent
		pending := &models.Transaction{Id: "tx-1", Status: models.PENDING_SETTLEMENT, UTRNumber: "UTR123"}

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(sent, nil)
		m.transactions.On("GetTransaction", mock.Anything, "tx-1").Return(pending, nil)
		gateway.On("CheckTransactionStatus", mock.Anything, "UTR123").
			Return(&rtgs.TransactionStatusResult{Found: true, RemoteStatus: "ACCEPTED"}, nil)

		_, err := svc.ReconcileBatch(context.Background(), "batch-1")

		require.NoError(t, err)
		m.transactions.AssertNotCalled(t, "TransitionTransaction",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CreatedBatchIsNotReconcilable", func(t *testing.T) {
		svc, m, _ := newTestServiceWithGateway(t)

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(openBatch("tx-1"), nil)

		got, err := svc.ReconcileBatch(context.Background(), "batch-1")

		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, KindInvalidState, KindOf(err))
	})
}
