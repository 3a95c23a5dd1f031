package rtgs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rtgspay/settlement-engine/pkg/models"
)

// HTTPAdapter implements SettlementInterface against the settlement gateway's
// HTTP endpoint. The concrete deployment binds the gateway to whatever
// protocol the national network requires; this adapter only speaks the
// logical payloads.
type HTTPAdapter struct {
	BaseURL            string
	APIKey             string
	Client             *http.Client
	TransactionTimeout time.Duration
	BatchTimeout       time.Duration
}

// NewHTTPAdapter creates a new HTTPAdapter. Timeouts default to 30s for
// single-transaction calls and 60s for batch calls.
func NewHTTPAdapter(baseURL, apiKey string, txnTimeout, batchTimeout time.Duration) *HTTPAdapter {
	if txnTimeout == 0 {
		txnTimeout = 30 * time.Second
	}
	if batchTimeout == 0 {
		batchTimeout = 60 * time.Second
	}
	return &HTTPAdapter{
		BaseURL:            baseURL,
		APIKey:             apiKey,
		Client:             &http.Client{},
		TransactionTimeout: txnTimeout,
		BatchTimeout:       batchTimeout,
	}
}

// Make sure we conform to the interface
var _ SettlementInterface = (*HTTPAdapter)(nil)

type batchSubmission struct {
	BatchNumber  string               `json:"batch_number"`
	ScheduledAt  time.Time            `json:"scheduled_at"`
	TotalAmount  int64                `json:"total_amount"`
	Transactions []models.Transaction `json:"transactions"`
}

// SendTransaction submits a single transaction for immediate settlement.
func (a *HTTPAdapter) SendTransaction(ctx context.Context, tx *models.Transaction) (*TransactionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.TransactionTimeout)
	defer cancel()

	var result TransactionResult
	if err := a.post(ctx, "/v1/transactions", tx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckTransactionStatus queries the settlement state of a transaction by its UTR.
func (a *HTTPAdapter) CheckTransactionStatus(ctx context.Context, utr string) (*TransactionStatusResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.TransactionTimeout)
	defer cancel()

	var result TransactionStatusResult
	if err := a.get(ctx, "/v1/transactions/"+url.PathEscape(utr), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendBatch submits a batch together with its enrolled transactions.
func (a *HTTPAdapter) SendBatch(ctx context.Context, batch *models.Batch, txns []models.Transaction) (*BatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.BatchTimeout)
	defer cancel()

	payload := batchSubmission{
		BatchNumber:  batch.BatchNumber,
		ScheduledAt:  batch.ScheduledAt,
		TotalAmount:  batch.TotalAmount,
		Transactions: txns,
	}

	var result BatchResult
	if err := a.post(ctx, "/v1/batches", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckBatchStatus queries the settlement state of a batch by its batch number.
func (a *HTTPAdapter) CheckBatchStatus(ctx context.Context, batchNumber string) (*BatchStatusResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.TransactionTimeout)
	defer cancel()

	var result BatchStatusResult
	if err := a.get(ctx, "/v1/batches/"+url.PathEscape(batchNumber), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *HTTPAdapter) post(ctx context.Context, path string, payload, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.APIKey != "" {
		req.Header.Set("X-Api-Key", a.APIKey)
	}

	return a.do(req, result)
}

func (a *HTTPAdapter) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	if a.APIKey != "" {
		req.Header.Set("X-Api-Key", a.APIKey)
	}

	return a.do(req, result)
}

// do executes the request and decodes the response, translating transport
// failures into the sentinel errors the orchestrator branches on.
func (a *HTTPAdapter) do(req *http.Request, result interface{}) error {
	resp, err := a.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: gateway returned %d", ErrUnreachable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gateway rejected request with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}
