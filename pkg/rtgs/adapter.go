package rtgs

import (
	"context"
	"errors"
	"time"

	"github.com/rtgspay/settlement-engine/pkg/models"
)

// ErrUnreachable is returned when the gateway could not be reached at all.
// It says nothing about whether the counterparty received the request.
var ErrUnreachable = errors.New("settlement gateway unreachable")

// ErrTimeout is returned when the gateway call ran out of time. The request
// may still have been received, so callers must reconcile rather than retry.
var ErrTimeout = errors.New("settlement gateway call timed out")

// TransactionResult is the gateway's answer to a single-transaction submission.
type TransactionResult struct {
	Accepted  bool      `json:"accepted"`
	UTRNumber string    `json:"utr_number"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// TransactionStatusResult is the gateway's view of a previously submitted transaction.
type TransactionStatusResult struct {
	Found        bool      `json:"found"`
	RemoteStatus string    `json:"remote_status"`
	Timestamp    time.Time `json:"timestamp"`
}

// BatchResult is the gateway's answer to a batch submission. UTRNumbers maps
// our transaction ids to the settlement references the network assigned;
// transactions missing from the map are settled later and picked up by
// reconciliation.
type BatchResult struct {
	Accepted      bool              `json:"accepted"`
	RemoteBatchID string            `json:"remote_batch_id"`
	AcceptedCount int               `json:"accepted_count"`
	UTRNumbers    map[string]string `json:"utr_numbers"`
	Message       string            `json:"message"`
}

// BatchStatusResult is the gateway's view of a previously submitted batch.
type BatchStatusResult struct {
	Found           bool   `json:"found"`
	RemoteStatus    string `json:"remote_status"`
	SuccessfulCount int    `json:"successful_count"`
	FailedCount     int    `json:"failed_count"`
	Details         string `json:"details"`
}

// SettlementInterface is the boundary to the national settlement system.
// Implementations must report transport failures (ErrUnreachable, ErrTimeout)
// as errors and application-level rejections as Accepted=false results.
type SettlementInterface interface {
	// SendTransaction submits a single transaction for immediate settlement.
	SendTransaction(ctx context.Context, tx *models.Transaction) (*TransactionResult, error)

	// CheckTransactionStatus queries the settlement state of a transaction by its UTR.
	CheckTransactionStatus(ctx context.Context, utr string) (*TransactionStatusResult, error)

	// SendBatch submits a batch together with its enrolled transactions.
	SendBatch(ctx context.Context, batch *models.Batch, txns []models.Transaction) (*BatchResult, error)

	// CheckBatchStatus queries the settlement state of a batch by its batch number.
	CheckBatchStatus(ctx context.Context, batchNumber string) (*BatchStatusResult, error)
}
