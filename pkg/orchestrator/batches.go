package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/rtgs"
	"github.com/rtgspay/settlement-engine/pkg/storage"
)

// CreateBatch opens a new settlement batch in CREATED state. When scheduledAt
// is zero, the batch is scheduled for the expected settlement time of a
// transaction initiated now, honoring operating hours and the cutoff.
func (s *Service) CreateBatch(ctx context.Context, scheduledAt time.Time) (*models.Batch, error) {
	const op = "orchestrator.CreateBatch"

	now := s.now()
	if scheduledAt.IsZero() {
		scheduledAt = s.window.ExpectedSettlementTime(now)
	}

	batch := &models.Batch{
		Id:             uuid.NewString(),
		BatchNumber:    s.window.GenerateBatchNumber(scheduledAt),
		Status:         models.BatchCreated,
		TransactionIds: []string{},
		ScheduledAt:    scheduledAt,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ctx = withBatchScope(ctx, batch.Id)
	created, err := s.batches.CreateBatch(ctx, batch)
	if err != nil {
		return nil, E(KindSystem, op, err)
	}

	s.auditBatch(ctx, "batch.created", created, map[string]string{
		"batch_number": created.BatchNumber,
		"scheduled_at": created.ScheduledAt.Format(time.RFC3339),
	})

	s.logger.Info(ctx, "batch created",
		"batch_number", created.BatchNumber,
		"scheduled_at", created.ScheduledAt,
	)
	return created, nil
}

// EnrollTransaction adds a transaction to an open batch and moves it to
// PROCESSING. Both writes commit atomically: a batch that has started
// processing or a transaction already claimed by another batch rejects the
// enrollment.
func (s *Service) EnrollTransaction(ctx context.Context, batchID, txID string) (*models.Batch, *models.Transaction, error) {
	const op = "orchestrator.EnrollTransaction"
	ctx = withBatchScope(withTransactionScope(ctx, txID), batchID)

	batch, err := s.getBatch(ctx, op, batchID)
	if err != nil {
		return nil, nil, err
	}
	tx, err := s.getTransaction(ctx, op, txID)
	if err != nil {
		return nil, nil, err
	}

	if batch.Status != models.BatchCreated {
		return nil, nil, Ef(KindInvalidState, op, "batch %s is %s, enrollment requires %s", batchID, batch.Status, models.BatchCreated)
	}
	if batch.Contains(txID) {
		return nil, nil, Ef(KindInvalidState, op, "transaction %s already enrolled in batch %s", txID, batchID)
	}
	if tx.Status != models.VALIDATED && tx.Status != models.INITIATED {
		return nil, nil, Ef(KindInvalidState, op, "transaction %s is %s, enrollment requires %s or %s", txID, tx.Status, models.VALIDATED, models.INITIATED)
	}

	if err := s.batches.EnrollTransaction(ctx, batch, tx); err != nil {
		return nil, nil, s.classifyTransition(op, err)
	}

	// Re-read both sides so the caller sees the committed state.
	batch, err = s.getBatch(ctx, op, batchID)
	if err != nil {
		return nil, nil, err
	}
	tx, err = s.getTransaction(ctx, op, txID)
	if err != nil {
		return nil, nil, err
	}

	s.auditBatch(ctx, "batch.transaction_enrolled", batch, map[string]string{
		"transaction_id": txID,
		"total_amount":   fmt.Sprintf("%d", batch.TotalAmount),
	})
	s.auditTransaction(ctx, "transaction.enrolled", tx, map[string]string{"batch_id": batchID})

	s.logger.Info(ctx, "transaction enrolled",
		"transaction_count", batch.TransactionCount,
		"total_amount", batch.TotalAmount,
	)
	return batch, tx, nil
}

// ProcessBatch submits a batch to the settlement gateway. The CREATED to
// PROCESSING transition is a conditional write and doubles as the idempotency
// gate: a second call for the same batch observes the conflict and never
// reaches the gateway.
//
// On gateway success the batch moves to SENT and every enrolled transaction to
// PENDING_SETTLEMENT, recording the UTR where the gateway assigned one. On
// gateway rejection or unreachability the batch moves to FAILED and the
// transactions stay PROCESSING. On timeout the batch stays PROCESSING, because
// the gateway may have received the submission; reconciliation settles it.
func (s *Service) ProcessBatch(ctx context.Context, batchID string) (*models.Batch, error) {
	const op = "orchestrator.ProcessBatch"
	ctx = withBatchScope(ctx, batchID)

	batch, err := s.getBatch(ctx, op, batchID)
	if err != nil {
		return nil, err
	}
	if batch.Status != models.BatchCreated {
		return nil, Ef(KindInvalidState, op, "batch %s is %s, processing requires %s", batchID, batch.Status, models.BatchCreated)
	}
	if len(batch.TransactionIds) == 0 {
		return nil, Ef(KindEmptyBatch, op, "batch %s has no transactions", batchID)
	}

	txns, err := s.loadBatchTransactions(ctx, batch)
	if err != nil {
		return nil, E(KindSystem, op, err)
	}

	batch, err = s.batches.TransitionBatch(ctx, batchID, models.BatchCreated, models.BatchProcessing)
	if err != nil {
		return nil, s.classifyTransition(op, err)
	}
	s.auditBatch(ctx, "batch.processing", batch, nil)

	result, err := s.gateway.SendBatch(ctx, batch, txns)
	if err != nil {
		if errors.Is(err, rtgs.ErrTimeout) {
			// The gateway may have the batch. Leave it PROCESSING and let
			// reconciliation decide.
			s.auditBatch(ctx, "batch.submission_timeout", batch, map[string]string{"error": err.Error()})
			s.logger.Warn(ctx, "batch submission timed out, awaiting reconciliation")
			return nil, E(KindExternalSystem, op, err)
		}
		return nil, s.failBatchSubmission(ctx, op, batch, err.Error())
	}
	if !result.Accepted {
		return nil, s.failBatchSubmission(ctx, op, batch, result.Message)
	}

	sent, err := s.batches.TransitionBatch(ctx, batchID, models.BatchProcessing, models.BatchSent)
	if err != nil {
		return nil, s.classifyTransition(op, err)
	}
	s.auditBatch(ctx, "batch.sent", sent, map[string]string{
		"remote_batch_id": result.RemoteBatchID,
		"accepted_count":  fmt.Sprintf("%d", result.AcceptedCount),
	})

	for i := range txns {
		s.markPendingSettlement(ctx, &txns[i], result.UTRNumbers[txns[i].Id])
	}

	s.logger.Info(ctx, "batch sent",
		"batch_number", sent.BatchNumber,
		"accepted_count", result.AcceptedCount,
	)
	return sent, nil
}

// CheckBatchStatus looks up a batch by its number. For batches awaiting a
// settlement outcome it also queries the gateway and merges the remote view
// into the response. It never writes; reconciliation owns the state changes.
func (s *Service) CheckBatchStatus(ctx context.Context, batchNumber string) (*BatchView, error) {
	const op = "orchestrator.CheckBatchStatus"

	batch, err := s.batches.GetBatchByNumber(ctx, batchNumber)
	if err != nil {
		if errors.Is(err, storage.ErrBatchNotFound) {
			return nil, E(KindNotFound, op, err)
		}
		return nil, E(KindSystem, op, err)
	}
	ctx = withBatchScope(ctx, batch.Id)

	view := &BatchView{Batch: batch}
	if batch.Status != models.BatchProcessing && batch.Status != models.BatchSent {
		return view, nil
	}

	remote, err := s.gateway.CheckBatchStatus(ctx, batch.BatchNumber)
	if err != nil {
		return nil, E(KindExternalSystem, op, err)
	}
	if remote.Found {
		view.RemoteStatus = remote.RemoteStatus
		view.SuccessfulCount = remote.SuccessfulCount
		view.FailedCount = remote.FailedCount
		view.RemoteDetails = remote.Details
	}
	return view, nil
}

// BatchView is a batch joined with the settlement network's view of it.
type BatchView struct {
	Batch           *models.Batch `json:"batch"`
	RemoteStatus    string        `json:"remote_status,omitempty"`
	SuccessfulCount int           `json:"successful_count,omitempty"`
	FailedCount     int           `json:"failed_count,omitempty"`
	RemoteDetails   string        `json:"remote_details,omitempty"`
}

// failBatchSubmission records a definitive gateway failure: the batch moves to
// FAILED while its transactions stay PROCESSING for retry or reconciliation.
func (s *Service) failBatchSubmission(ctx context.Context, op string, batch *models.Batch, message string) error {
	failed, err := s.batches.TransitionBatch(ctx, batch.Id, models.BatchProcessing, models.BatchFailed)
	if err != nil {
		return s.classifyTransition(op, err)
	}
	s.auditBatch(ctx, "batch.failed", failed, map[string]string{"error": message})
	s.logger.Error(ctx, "batch submission failed", "error", message)
	return Ef(KindExternalSystem, op, "settlement gateway rejected batch %s: %s", batch.BatchNumber, message)
}

// markPendingSettlement moves one transaction to PENDING_SETTLEMENT after a
// successful batch send, recording the UTR when the gateway assigned one. A
// conflict here means another writer got there first, which is fine.
func (s *Service) markPendingSettlement(ctx context.Context, tx *models.Transaction, utr string) {
	update := &storage.TransactionUpdate{}
	if utr != "" {
		update.UTRNumber = &utr
	}
	updated, err := s.transactions.TransitionTransaction(ctx, tx.Id, models.PROCESSING, models.PENDING_SETTLEMENT, update)
	if err != nil {
		if errors.Is(err, storage.ErrStatusConflict) {
			return
		}
		s.logger.Error(ctx, "failed to mark transaction pending settlement",
			"transaction_id", tx.Id, "error", err)
		return
	}
	s.auditTransaction(ctx, "transaction.pending_settlement", updated, map[string]string{"utr_number": utr})
}

// loadBatchTransactions fetches every enrolled transaction. Unlike the query
// path, a missing transaction here is a fault: the batch cannot be submitted
// with an incomplete view of its contents.
func (s *Service) loadBatchTransactions(ctx context.Context, batch *models.Batch) ([]models.Transaction, error) {
	txns := make([]models.Transaction, 0, len(batch.TransactionIds))
	for _, id := range batch.TransactionIds {
		tx, err := s.transactions.GetTransaction(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading batch transaction %s: %w", id, err)
		}
		txns = append(txns, *tx)
	}
	return txns, nil
}
