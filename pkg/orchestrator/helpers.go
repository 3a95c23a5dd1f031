package orchestrator

import (
	"context"
	"errors"

	"github.com/rtgspay/settlement-engine/pkg/logger"
	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/notify"
	"github.com/rtgspay/settlement-engine/pkg/storage"
)

func withTransactionScope(ctx context.Context, txID string) context.Context {
	return logger.WithTransactionID(ctx, txID)
}

func withBatchScope(ctx context.Context, batchID string) context.Context {
	return logger.WithBatchID(ctx, batchID)
}

func (s *Service) getTransaction(ctx context.Context, op, txID string) (*models.Transaction, error) {
	tx, err := s.transactions.GetTransaction(ctx, txID)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			return nil, E(KindNotFound, op, err)
		}
		return nil, E(KindSystem, op, err)
	}
	return tx, nil
}

func (s *Service) getBatch(ctx context.Context, op, batchID string) (*models.Batch, error) {
	batch, err := s.batches.GetBatch(ctx, batchID)
	if err != nil {
		if errors.Is(err, storage.ErrBatchNotFound) {
			return nil, E(KindNotFound, op, err)
		}
		return nil, E(KindSystem, op, err)
	}
	return batch, nil
}

// classifyTransition maps storage conflicts from conditional writes onto the
// invalid-state kind. Anything else is a storage fault.
func (s *Service) classifyTransition(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrStatusConflict),
		errors.Is(err, storage.ErrInvalidTransition),
		errors.Is(err, storage.ErrBatchNotOpen),
		errors.Is(err, storage.ErrTransactionNotEnrollable):
		return E(KindInvalidState, op, err)
	default:
		return E(KindSystem, op, err)
	}
}

// auditTransaction appends an audit event for a transaction transition. Audit
// failures are logged, never surfaced: the primary write already happened.
func (s *Service) auditTransaction(ctx context.Context, eventType string, tx *models.Transaction, details map[string]string) {
	event := &models.AuditEvent{
		EventType:     eventType,
		TransactionID: tx.Id,
		Details:       details,
	}
	if err := s.audit.LogEvent(ctx, event); err != nil {
		s.logger.Error(ctx, "audit write failed", "event_type", eventType, "error", err)
	}
}

// auditBatch appends an audit event for a batch transition.
func (s *Service) auditBatch(ctx context.Context, eventType string, batch *models.Batch, details map[string]string) {
	event := &models.AuditEvent{
		EventType: eventType,
		BatchID:   batch.Id,
		Details:   details,
	}
	if err := s.audit.LogEvent(ctx, event); err != nil {
		s.logger.Error(ctx, "audit write failed", "event_type", eventType, "error", err)
	}
}

// publish sends a customer notification. Publish failures are logged, never
// surfaced.
func (s *Service) publish(ctx context.Context, eventType notify.EventType, tx *models.Transaction) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, notify.NewEvent(eventType, tx)); err != nil {
		s.logger.Error(ctx, "notification publish failed", "event_type", string(eventType), "error", err)
	}
}
