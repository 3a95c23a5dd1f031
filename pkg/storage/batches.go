package storage

import (
	"context"
	"time"

	"github.com/rtgspay/settlement-engine/pkg/models"
)

// BatchReader defines the interface for reading batch data.
type BatchReader interface {
	// GetBatch retrieves a batch by its ID.
	GetBatch(ctx context.Context, batchID string) (*models.Batch, error)

	// GetBatchByNumber retrieves a batch by its generated batch number.
	GetBatchByNumber(ctx context.Context, batchNumber string) (*models.Batch, error)

	// ListBatchesByStatus retrieves all batches currently in the given status.
	ListBatchesByStatus(ctx context.Context, status models.BatchStatus) ([]models.Batch, error)

	// ListBatchesByDateRange retrieves batches scheduled within [from, to).
	ListBatchesByDateRange(ctx context.Context, from, to time.Time) ([]models.Batch, error)
}

// BatchWriter defines the interface for creating batches and moving them
// through their lifecycle.
type BatchWriter interface {
	// CreateBatch persists a new batch in CREATED state and returns it.
	CreateBatch(ctx context.Context, batch *models.Batch) (*models.Batch, error)

	// EnrollTransaction atomically appends the transaction to the batch and
	// transitions the transaction to PROCESSING. Both writes are conditional:
	// the batch must still be CREATED at its expected version, and the
	// transaction must still be in an enrollable status. Either condition
	// failing rejects the whole write.
	EnrollTransaction(ctx context.Context, batch *models.Batch, tx *models.Transaction) error

	// TransitionBatch moves a batch from the expected prior status to the next
	// one as a compare-and-swap, rejecting with ErrStatusConflict otherwise.
	TransitionBatch(ctx context.Context, batchID string, from, to models.BatchStatus) (*models.Batch, error)
}

// BatchStore combines the reader and writer interfaces.
type BatchStore interface {
	BatchReader
	BatchWriter
}
