package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/storage"
)

// GetTransaction retrieves a transaction by id.
func (s *Service) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	return s.getTransaction(ctx, "orchestrator.GetTransaction", txID)
}

// ListTransactionsByStatus retrieves transactions in the given status.
func (s *Service) ListTransactionsByStatus(ctx context.Context, status models.TransactionStatus) ([]models.Transaction, error) {
	const op = "orchestrator.ListTransactionsByStatus"
	txns, err := s.transactions.ListTransactionsByStatus(ctx, status)
	if err != nil {
		return nil, E(KindSystem, op, err)
	}
	return txns, nil
}

// ListTransactionsByCustomerID retrieves a customer's transactions.
func (s *Service) ListTransactionsByCustomerID(ctx context.Context, customerID string) ([]models.Transaction, error) {
	const op = "orchestrator.ListTransactionsByCustomerID"
	txns, err := s.transactions.ListTransactionsByCustomerID(ctx, customerID)
	if err != nil {
		return nil, E(KindSystem, op, err)
	}
	return txns, nil
}

// GetTransactionAudit retrieves the audit trail for a transaction, most recent
// first.
func (s *Service) GetTransactionAudit(ctx context.Context, txID string, limit int32) ([]models.AuditEvent, error) {
	const op = "orchestrator.GetTransactionAudit"
	events, err := s.audit.ListEventsByTransaction(ctx, txID, limit)
	if err != nil {
		return nil, E(KindSystem, op, err)
	}
	return events, nil
}

// GetBatch retrieves a batch by id.
func (s *Service) GetBatch(ctx context.Context, batchID string) (*models.Batch, error) {
	return s.getBatch(ctx, "orchestrator.GetBatch", batchID)
}

// GetBatchByNumber retrieves a batch by its batch number.
func (s *Service) GetBatchByNumber(ctx context.Context, batchNumber string) (*models.Batch, error) {
	const op = "orchestrator.GetBatchByNumber"
	batch, err := s.batches.GetBatchByNumber(ctx, batchNumber)
	if err != nil {
		if errors.Is(err, storage.ErrBatchNotFound) {
			return nil, E(KindNotFound, op, err)
		}
		return nil, E(KindSystem, op, err)
	}
	return batch, nil
}

// ListBatchesByStatus retrieves batches in the given status.
func (s *Service) ListBatchesByStatus(ctx context.Context, status models.BatchStatus) ([]models.Batch, error) {
	const op = "orchestrator.ListBatchesByStatus"
	batches, err := s.batches.ListBatchesByStatus(ctx, status)
	if err != nil {
		return nil, E(KindSystem, op, err)
	}
	return batches, nil
}

// ListBatchesByDateRange retrieves batches scheduled within [from, to).
func (s *Service) ListBatchesByDateRange(ctx context.Context, from, to time.Time) ([]models.Batch, error) {
	const op = "orchestrator.ListBatchesByDateRange"
	batches, err := s.batches.ListBatchesByDateRange(ctx, from, to)
	if err != nil {
		return nil, E(KindSystem, op, err)
	}
	return batches, nil
}

// ListBatchTransactions joins a batch's transaction-id set against the
// transaction store. A transaction id that no longer resolves is omitted
// rather than failing the whole query.
func (s *Service) ListBatchTransactions(ctx context.Context, batchID string) ([]models.Transaction, error) {
	const op = "orchestrator.ListBatchTransactions"

	batch, err := s.getBatch(ctx, op, batchID)
	if err != nil {
		return nil, err
	}

	txns := make([]models.Transaction, 0, len(batch.TransactionIds))
	for _, id := range batch.TransactionIds {
		tx, err := s.transactions.GetTransaction(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrTransactionNotFound) {
				s.logger.Warn(ctx, "batch references missing transaction", "transaction_id", id)
				continue
			}
			return nil, E(KindSystem, op, err)
		}
		txns = append(txns, *tx)
	}
	return txns, nil
}
