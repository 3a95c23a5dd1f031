package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/notify"
	"github.com/rtgspay/settlement-engine/pkg/storage"
	"github.com/rtgspay/settlement-engine/pkg/validation"
)

const referencePrefix = "RTGS"

// CreateTransactionInput carries everything needed to initiate a transaction.
type CreateTransactionInput struct {
	Details    models.PaymentDetails
	CustomerID string
	Metadata   map[string]string
}

// CreateTransaction validates the payment instruction and, if it passes,
// persists a new transaction in INITIATED state with a generated reference
// number. Nothing is persisted for instructions that fail validation.
func (s *Service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*models.Transaction, error) {
	const op = "orchestrator.CreateTransaction"

	if err := s.validator.Validate(&input.Details); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return nil, E(KindValidation, op, err)
		}
		return nil, E(KindSystem, op, err)
	}

	now := s.now()
	tx := &models.Transaction{
		Id:              uuid.NewString(),
		ReferenceNumber: s.generateReferenceNumber(),
		Details:         input.Details,
		Status:          models.INITIATED,
		CustomerID:      input.CustomerID,
		Metadata:        input.Metadata,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ctx = withTransactionScope(ctx, tx.Id)
	created, err := s.transactions.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, E(KindSystem, op, err)
	}

	s.auditTransaction(ctx, "transaction.created", created, map[string]string{
		"reference_number": created.ReferenceNumber,
		"amount":           fmt.Sprintf("%d", created.Details.Amount),
	})
	s.publish(ctx, notify.EventTransactionInitiated, created)

	s.logger.Info(ctx, "transaction created",
		"reference_number", created.ReferenceNumber,
		"amount", created.Details.Amount,
	)
	return created, nil
}

// ValidateTransaction re-runs business-rule validation against a stored
// transaction and moves it INITIATED -> VALIDATED. A rule failure leaves the
// transaction INITIATED and reports the broken rule to the caller.
func (s *Service) ValidateTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	const op = "orchestrator.ValidateTransaction"
	ctx = withTransactionScope(ctx, txID)

	tx, err := s.getTransaction(ctx, op, txID)
	if err != nil {
		return nil, err
	}
	if tx.Status != models.INITIATED {
		return nil, Ef(KindInvalidState, op, "transaction %s is %s, expected %s", txID, tx.Status, models.INITIATED)
	}

	if verr := s.validator.Validate(&tx.Details); verr != nil {
		// A rule failure is a correctable input error, not a settlement
		// outcome. The transaction stays INITIATED so the caller can cancel
		// it or re-create it with corrected details.
		s.auditTransaction(ctx, "transaction.validation_failed", tx, map[string]string{"error": verr.Error()})
		return nil, E(KindValidation, op, verr)
	}

	validated, err := s.transactions.TransitionTransaction(ctx, txID, models.INITIATED, models.VALIDATED, nil)
	if err != nil {
		return nil, s.classifyTransition(op, err)
	}

	s.auditTransaction(ctx, "transaction.validated", validated, nil)
	s.logger.Info(ctx, "transaction validated")
	return validated, nil
}

// CancelTransaction cancels a transaction that has not yet reached a terminal
// state. The conditional write makes cancellation race-safe against concurrent
// enrollment or settlement.
func (s *Service) CancelTransaction(ctx context.Context, txID, reason string) (*models.Transaction, error) {
	const op = "orchestrator.CancelTransaction"
	ctx = withTransactionScope(ctx, txID)

	tx, err := s.getTransaction(ctx, op, txID)
	if err != nil {
		return nil, err
	}
	if tx.Status.IsTerminal() {
		return nil, E(KindInvalidState, op, fmt.Errorf("transaction %s is %s: %w", txID, tx.Status, storage.ErrTransactionNotCancellable))
	}

	update := &storage.TransactionUpdate{}
	if reason != "" {
		update.ReturnReason = &reason
	}
	cancelled, err := s.transactions.TransitionTransaction(ctx, txID, tx.Status, models.CANCELLED, update)
	if err != nil {
		return nil, s.classifyTransition(op, err)
	}

	s.auditTransaction(ctx, "transaction.cancelled", cancelled, map[string]string{"reason": reason})
	s.publish(ctx, notify.EventTransactionCancelled, cancelled)

	s.logger.Info(ctx, "transaction cancelled", "reason", reason)
	return cancelled, nil
}

// generateReferenceNumber builds the customer-facing reference: the RTGS
// prefix, the initiation date, and eight characters of entropy.
func (s *Service) generateReferenceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s%s%s", referencePrefix, s.now().Format("20060102"), suffix)
}
