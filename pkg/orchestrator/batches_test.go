package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/rtgs"
	rtgsmocks "github.com/rtgspay/settlement-engine/pkg/rtgs/mocks"
	"github.com/rtgspay/settlement-engine/pkg/storage"
)

func newTestServiceWithGateway(t *testing.T) (*Service, *serviceMocks, *rtgsmocks.SettlementInterface) {
	svc, m := newTestService(t)
	gateway := rtgsmocks.NewSettlementInterface(t)
	svc.gateway = gateway
	return svc, m, gateway
}

func openBatch(ids ...string) *models.Batch {
	return &models.Batch{
		Id:               "batch-1",
		BatchNumber:      "RTGSB202406041030-a1b2c3",
		Status:           models.BatchCreated,
		TransactionIds:   ids,
		TransactionCount: len(ids),
		Version:          1,
	}
}

func TestCreateBatch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService(t)

		m.batches.On("CreateBatch", mock.Anything, mock.MatchedBy(func(b *models.Batch) bool {
			return b.Status == models.BatchCreated && b.TransactionCount == 0
		})).Return(func(_ context.Context, b *models.Batch) (*models.Batch, error) {
			return b, nil
		})
		m.audit.On("LogEvent", mock.Anything, mock.Anything).Return(nil).Once()

		batch, err := svc.CreateBatch(context.Background(), testNow.Add(30*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, models.BatchCreated, batch.Status)
		assert.Regexp(t, `^RTGSB\d{12}-[0-9a-f]{6}$`, batch.BatchNumber)
		assert.Equal(t, int64(1), batch.Version)
	})

	t.Run("ZeroTimeUsesExpectedSettlementTime", func(t *testing.T) {
		svc, m := newTestService(t)

		m.batches.On("CreateBatch", mock.Anything, mock.Anything).
			Return(func(_ context.Context, b *models.Batch) (*models.Batch, error) {
				return b, nil
			})
		m.audit.On("LogEvent", mock.Anything, mock.Anything).Return(nil).Once()

		// testNow is Tuesday 10:00, within hours and before cutoff.
		batch, err := svc.CreateBatch(context.Background(), time.Time{})

		require.NoError(t, err)
		assert.Equal(t, testNow.Add(30*time.Minute), batch.ScheduledAt)
	})
}

func TestEnrollTransaction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService(t)

		batch := openBatch()
		tx := &models.Transaction{Id: "tx-1", Status: models.VALIDATED, Details: validDetails()}
		enrolled := openBatch("tx-1")
		enrolled.TotalAmount = 500_000
		processing := &models.Transaction{Id: "tx-1", Status: models.PROCESSING, Details: tx.Details}

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(batch, nil).Once()
		m.transactions.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil).Once()
		m.batches.On("EnrollTransaction", mock.Anything, batch, tx).Return(nil).Once()
		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(enrolled, nil).Once()
		m.transactions.On("GetTransaction", mock.Anything, "tx-1").Return(processing, nil).Once()
		m.audit.On("LogEvent", mock.Anything, mock.Anything).Return(nil).Times(2)

		gotBatch, gotTx, err := svc.EnrollTransaction(context.Background(), "batch-1", "tx-1")

		require.NoError(t, err)
		assert.Equal(t, 1, gotBatch.TransactionCount)
		assert.Equal(t, int64(500_000), gotBatch.TotalAmount)
		assert.Equal(t, models.PROCESSING, gotTx.Status)
	})

	t.Run("BatchNotOpenFails", func(t *testing.T) {
		svc, m := newTestService(t)

		closed := openBatch()
		closed.Status = models.BatchProcessing

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(closed, nil)
		m.transactions.On("GetTransaction", mock.Anything, "tx-1").
			Return(&models.Transaction{Id: "tx-1", Status: models.VALIDATED}, nil)

		_, _, err := svc.EnrollTransaction(context.Background(), "batch-1", "tx-1")

		require.Error(t, err)
		assert.Equal(t, KindInvalidState, KindOf(err))
	})

	t.Run("DuplicateEnrollmentFails", func(t *testing.T) {
		svc, m := newTestService(t)

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(openBatch("tx-1"), nil)
		m.transactions.On("GetTransaction", mock.Anything, "tx-1").
			Return(&models.Transaction{Id: "tx-1", Status: models.VALIDATED}, nil)

		_, _, err := svc.EnrollTransaction(context.Background(), "batch-1", "tx-1")

		require.Error(t, err)
		assert.Equal(t, KindInvalidState, KindOf(err))
	})

	t.Run("LostEnrollmentRaceFails", func(t *testing.T) {
		svc, m := newTestService(t)

		batch := openBatch()
		tx := &models.Transaction{Id: "tx-1", Status: models.VALIDATED}

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(batch, nil)
		m.transactions.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
		m.batches.On("EnrollTransaction", mock.Anything, batch, tx).
			Return(storage.ErrTransactionNotEnrollable)

		_, _, err := svc.EnrollTransaction(context.Background(), "batch-1", "tx-1")

		require.Error(t, err)
		assert.Equal(t, KindInvalidState, KindOf(err))
		assert.ErrorIs(t, err, storage.ErrTransactionNotEnrollable)
	})

	t.Run("UnknownBatchFails", func(t *testing.T) {
		svc, m := newTestService(t)

		m.batches.On("GetBatch", mock.Anything, "nope").Return(nil, storage.ErrBatchNotFound)

		_, _, err := svc.EnrollTransaction(context.Background(), "nope", "tx-1")

		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestProcessBatch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, m, gateway := newTestServiceWithGateway(t)

		batch := openBatch("tx-1")
		batch.TotalAmount = 500_000
		processing := openBatch("tx-1")
		processing.Status = models.BatchProcessing
		sent := openBatch("tx-1")
		sent.Status = models.BatchSent
		tx := &models.Transaction{Id: "tx-1", Status: models.PROCESSING, Details: validDetails()}

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(batch, nil)
		m.transactions.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
		m.batches.On("TransitionBatch", mock.Anything, "batch-1", models.BatchCreated, models.BatchProcessing).
			Return(processing, nil).Once()
		gateway.On("SendBatch", mock.Anything, processing, mock.Anything).Return(&rtgs.BatchResult{
			Accepted:      true,
			RemoteBatchID: "remote-9",
			AcceptedCount: 1,
			UTRNumbers:    map[string]string{"tx-1": "UTR123"},
		}, nil).Once()
		m.batches.On("TransitionBatch", mock.Anything, "batch-1", models.BatchProcessing, models.BatchSent).
			Return(sent, nil).Once()
		m.transactions.On("TransitionTransaction", mock.Anything, "tx-1", models.PROCESSING, models.PENDING_SETTLEMENT,
			mock.MatchedBy(func(u *storage.TransactionUpdate) bool {
				return u.UTRNumber != nil && *u.UTRNumber == "UTR123"
			})).
			Return(&models.Transaction{Id: "tx-1", Status: models.PENDING_SETTLEMENT, UTRNumber: "UTR123"}, nil).Once()
		m.audit.On("LogEvent", mock.Anything, mock.Anything).Return(nil)

		got, err := svc.ProcessBatch(context.Background(), "batch-1")

		require.NoError(t, err)
		assert.Equal(t, models.BatchSent, got.Status)
	})

	t.Run("SecondCallIsRejected", func(t *testing.T) {
		svc, m, gateway := newTestServiceWithGateway(t)

		already := openBatch("tx-1")
		already.Status = models.BatchProcessing

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(already, nil)

		got, err := svc.ProcessBatch(context.Background(), "batch-1")

		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, KindInvalidState, KindOf(err))
		gateway.AssertNotCalled(t, "SendBatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EmptyBatchFails", func(t *testing.T) {
		svc, m, _ := newTestServiceWithGateway(t)

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(openBatch(), nil)

		got, err := svc.ProcessBatch(context.Background(), "batch-1")

		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, KindEmptyBatch, KindOf(err))
	})

	t.Run("TimeoutLeavesBatchProcessing", func(t *testing.T) {
		svc, m, gateway := newTestServiceWithGateway(t)

		batch := openBatch("tx-1")
		processing := openBatch("tx-1")
		processing.Status = models.BatchProcessing
		tx := &models.Transaction{Id: "tx-1", Status: models.PROCESSING}

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(batch, nil)
		m.transactions.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
		m.batches.On("TransitionBatch", mock.Anything, "batch-1", models.BatchCreated, models.BatchProcessing).
			Return(processing, nil).Once()
		gateway.On("SendBatch", mock.Anything, processing, mock.Anything).Return(nil, rtgs.ErrTimeout).Once()
		m.audit.On("LogEvent", mock.Anything, mock.Anything).Return(nil)

		got, err := svc.ProcessBatch(context.Background(), "batch-1")

		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, KindExternalSystem, KindOf(err))
		assert.ErrorIs(t, err, rtgs.ErrTimeout)
		// No transition to FAILED was expected or performed.
		m.batches.AssertNotCalled(t, "TransitionBatch", mock.Anything, "batch-1", models.BatchProcessing, models.BatchFailed)
	})

	t.Run("RejectionFailsBatch", func(t *testing.T) {
		svc, m, gateway := newTestServiceWithGateway(t)

		batch := openBatch("tx-1")
		processing := openBatch("tx-1")
		processing.Status = models.BatchProcessing
		failed := openBatch("tx-1")
		failed.Status = models.BatchFailed
		tx := &models.Transaction{Id: "tx-1", Status: models.PROCESSING}

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(batch, nil)
		m.transactions.On("GetTransaction", mock.Anything, "tx-1").Return(tx, nil)
		m.batches.On("TransitionBatch", mock.Anything, "batch-1", models.BatchCreated, models.BatchProcessing).
			Return(processing, nil).Once()
		gateway.On("SendBatch", mock.Anything, processing, mock.Anything).Return(&rtgs.BatchResult{
			Accepted: false,
			Message:  "duplicate batch number",
		}, nil).Once()
		m.batches.On("TransitionBatch", mock.Anything, "batch-1", models.BatchProcessing, models.BatchFailed).
			Return(failed, nil).Once()
		m.audit.On("LogEvent", mock.Anything, mock.Anything).Return(nil)

		got, err := svc.ProcessBatch(context.Background(), "batch-1")

		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, KindExternalSystem, KindOf(err))
		assert.Contains(t, err.Error(), "duplicate batch number")
		// Transactions stay PROCESSING: no transaction transition was expected.
		m.transactions.AssertNotCalled(t, "TransitionTransaction",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCheckBatchStatus(t *testing.T) {
	t.Run("MergesRemoteViewForSentBatch", func(t *testing.T) {
		svc, m, gateway := newTestServiceWithGateway(t)

		sent := openBatch("tx-1")
		sent.Status = models.BatchSent

		m.batches.On("GetBatchByNumber", mock.Anything, sent.BatchNumber).Return(sent, nil)
		gateway.On("CheckBatchStatus", mock.Anything, sent.BatchNumber).Return(&rtgs.BatchStatusResult{
			Found:           true,
			RemoteStatus:    "SETTLED",
			SuccessfulCount: 1,
		}, nil)

		view, err := svc.CheckBatchStatus(context.Background(), sent.BatchNumber)

		require.NoError(t, err)
		assert.Equal(t, models.BatchSent, view.Batch.Status)
		assert.Equal(t, "SETTLED", view.RemoteStatus)
		assert.Equal(t, 1, view.SuccessfulCount)
	})

	t.Run("CreatedBatchSkipsGateway", func(t *testing.T) {
		svc, m, gateway := newTestServiceWithGateway(t)

		created := openBatch()

		m.batches.On("GetBatchByNumber", mock.Anything, created.BatchNumber).Return(created, nil)

		view, err := svc.CheckBatchStatus(context.Background(), created.BatchNumber)

		require.NoError(t, err)
		assert.Empty(t, view.RemoteStatus)
		gateway.AssertNotCalled(t, "CheckBatchStatus", mock.Anything, mock.Anything)
	})

	t.Run("UnknownBatchNumberFails", func(t *testing.T) {
		svc, m, _ := newTestServiceWithGateway(t)

		m.batches.On("GetBatchByNumber", mock.Anything, "RTGSB000000000000-ffffff").
			Return(nil, storage.ErrBatchNotFound)

		view, err := svc.CheckBatchStatus(context.Background(), "RTGSB000000000000-ffffff")

		require.Error(t, err)
		assert.Nil(t, view)
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}
