package storage

import (
	"context"
	"time"

	"github.com/rtgspay/settlement-engine/pkg/models"
)

// TransactionUpdate carries the optional fields a status transition may set
// alongside the new status. Nil fields are left untouched.
type TransactionUpdate struct {
	UTRNumber    *string
	ReturnReason *string
	ErrorMessage *string
	ProcessedAt  *time.Time
	CompletedAt  *time.Time
}

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactionsByStatus retrieves all transactions currently in the given status.
	ListTransactionsByStatus(ctx context.Context, status models.TransactionStatus) ([]models.Transaction, error)

	// ListTransactionsByCustomerID retrieves all transactions owned by a customer.
	ListTransactionsByCustomerID(ctx context.Context, customerID string) ([]models.Transaction, error)
}

// TransactionWriter defines the interface for creating transactions and moving
// them through their lifecycle.
type TransactionWriter interface {
	// CreateTransaction persists a new transaction and returns it.
	CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	// TransitionTransaction moves a transaction from the expected prior status
	// to the next one as a compare-and-swap: if the stored status is no longer
	// `from`, the write is rejected with ErrStatusConflict.
	TransitionTransaction(ctx context.Context, txID string, from, to models.TransactionStatus, update *TransactionUpdate) (*models.Transaction, error)
}

// TransactionStore combines the reader and writer interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionWriter
}
