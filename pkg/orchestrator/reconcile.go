package orchestrator

import (
	"context"
	"errors"
	"strings"

	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/notify"
	"github.com/rtgspay/settlement-engine/pkg/storage"
)

// Remote statuses reported by the settlement network.
const (
	remoteStatusAccepted  = "ACCEPTED"
	remoteStatusSettled   = "SETTLED"
	remoteStatusCompleted = "COMPLETED"
	remoteStatusReturned  = "RETURNED"
	remoteStatusRejected  = "REJECTED"
	remoteStatusFailed    = "FAILED"
)

// ReconcileBatch resolves a batch whose settlement outcome is not yet known
// locally.
//
// A PROCESSING batch is one whose submission timed out: the gateway is asked
// whether it has the batch. If it does, the submission went through and the
// batch moves to SENT with its transactions marked PENDING_SETTLEMENT; if the
// gateway has never seen it, the batch moves to FAILED and its transactions
// stay PROCESSING for re-batching.
//
// A SENT batch is awaiting per-transaction outcomes: each PENDING_SETTLEMENT
// transaction with a UTR is checked against the gateway and moved to its
// terminal state when the network reports one.
func (s *Service) ReconcileBatch(ctx context.Context, batchID string) (*models.Batch, error) {
	const op = "orchestrator.ReconcileBatch"
	ctx = withBatchScope(ctx, batchID)

	batch, err := s.getBatch(ctx, op, batchID)
	if err != nil {
		return nil, err
	}

	switch batch.Status {
	case models.BatchProcessing:
		return s.reconcileSubmission(ctx, op, batch)
	case models.BatchSent:
		return s.reconcileSettlements(ctx, op, batch)
	default:
		return nil, Ef(KindInvalidState, op, "batch %s is %s, reconciliation applies to %s or %s",
			batchID, batch.Status, models.BatchProcessing, models.BatchSent)
	}
}

// reconcileSubmission resolves whether a timed-out batch submission actually
// reached the gateway.
func (s *Service) reconcileSubmission(ctx context.Context, op string, batch *models.Batch) (*models.Batch, error) {
	remote, err := s.gateway.CheckBatchStatus(ctx, batch.BatchNumber)
	if err != nil {
		return nil, E(KindExternalSystem, op, err)
	}

	if !remote.Found {
		failed, err := s.batches.TransitionBatch(ctx, batch.Id, models.BatchProcessing, models.BatchFailed)
		if err != nil {
			return nil, s.classifyTransition(op, err)
		}
		s.auditBatch(ctx, "batch.reconciled_failed", failed, map[string]string{
			"reason": "submission never reached settlement network",
		})
		s.logger.Warn(ctx, "batch submission confirmed lost", "batch_number", batch.BatchNumber)
		return failed, nil
	}

	sent, err := s.batches.TransitionBatch(ctx, batch.Id, models.BatchProcessing, models.BatchSent)
	if err != nil {
		return nil, s.classifyTransition(op, err)
	}
	s.auditBatch(ctx, "batch.reconciled_sent", sent, map[string]string{
		"remote_status": remote.RemoteStatus,
	})

	for _, txID := range sent.TransactionIds {
		tx, err := s.transactions.GetTransaction(ctx, txID)
		if err != nil {
			s.logger.Error(ctx, "reconciliation could not load transaction", "transaction_id", txID, "error", err)
			continue
		}
		if tx.Status == models.PROCESSING {
			s.markPendingSettlement(ctx, tx, "")
		}
	}

	s.logger.Info(ctx, "batch submission confirmed by reconciliation", "batch_number", sent.BatchNumber)
	return sent, nil
}

// reconcileSettlements pulls per-transaction outcomes for a sent batch.
func (s *Service) reconcileSettlements(ctx context.Context, op string, batch *models.Batch) (*models.Batch, error) {
	for _, txID := range batch.TransactionIds {
		tx, err := s.transactions.GetTransaction(ctx, txID)
		if err != nil {
			s.logger.Error(ctx, "reconciliation could not load transaction", "transaction_id", txID, "error", err)
			continue
		}
		if tx.Status != models.PENDING_SETTLEMENT || tx.UTRNumber == "" {
			continue
		}

		remote, err := s.gateway.CheckTransactionStatus(ctx, tx.UTRNumber)
		if err != nil {
			return nil, E(KindExternalSystem, op, err)
		}
		if !remote.Found {
			continue
		}
		s.applySettlementOutcome(ctx, tx, remote.RemoteStatus)
	}
	return batch, nil
}

// applySettlementOutcome maps the network's terminal statuses onto ours. A
// status the network still considers in flight leaves the transaction
// PENDING_SETTLEMENT.
func (s *Service) applySettlementOutcome(ctx context.Context, tx *models.Transaction, remoteStatus string) {
	ctx = withTransactionScope(ctx, tx.Id)
	now := s.now()

	switch strings.ToUpper(remoteStatus) {
	case remoteStatusSettled, remoteStatusCompleted:
		updated, err := s.transactions.TransitionTransaction(ctx, tx.Id, models.PENDING_SETTLEMENT, models.COMPLETED, &storage.TransactionUpdate{
			CompletedAt: &now,
		})
		if err != nil {
			s.logReconcileConflict(ctx, tx.Id, err)
			return
		}
		s.auditTransaction(ctx, "transaction.completed", updated, map[string]string{"utr_number": tx.UTRNumber})
		s.publish(ctx, notify.EventTransactionCompleted, updated)

	case remoteStatusReturned:
		reason := "returned by settlement network"
		updated, err := s.transactions.TransitionTransaction(ctx, tx.Id, models.PENDING_SETTLEMENT, models.RETURNED, &storage.TransactionUpdate{
			ReturnReason: &reason,
			CompletedAt:  &now,
		})
		if err != nil {
			s.logReconcileConflict(ctx, tx.Id, err)
			return
		}
		s.auditTransaction(ctx, "transaction.returned", updated, map[string]string{"utr_number": tx.UTRNumber})
		s.publish(ctx, notify.EventTransactionReturned, updated)

	case remoteStatusRejected, remoteStatusFailed:
		msg := "rejected by settlement network"
		updated, err := s.transactions.TransitionTransaction(ctx, tx.Id, models.PENDING_SETTLEMENT, models.FAILED, &storage.TransactionUpdate{
			ErrorMessage: &msg,
			CompletedAt:  &now,
		})
		if err != nil {
			s.logReconcileConflict(ctx, tx.Id, err)
			return
		}
		s.auditTransaction(ctx, "transaction.failed", updated, map[string]string{"utr_number": tx.UTRNumber})
		s.publish(ctx, notify.EventTransactionFailed, updated)

	case remoteStatusAccepted:
		// Still in flight on the network side.
	}
}

func (s *Service) logReconcileConflict(ctx context.Context, txID string, err error) {
	if errors.Is(err, storage.ErrStatusConflict) {
		return
	}
	s.logger.Error(ctx, "reconciliation transition failed", "transaction_id", txID, "error", err)
}
