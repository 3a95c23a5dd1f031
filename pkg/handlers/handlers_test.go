package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rtgspay/settlement-engine/pkg/api"
	"github.com/rtgspay/settlement-engine/pkg/models"
	notifymocks "github.com/rtgspay/settlement-engine/pkg/notify/mocks"
	"github.com/rtgspay/settlement-engine/pkg/orchestrator"
	"github.com/rtgspay/settlement-engine/pkg/storage"
	storagemocks "github.com/rtgspay/settlement-engine/pkg/storage/mocks"
)

type handlerMocks struct {
	transactions *storagemocks.TransactionStore
	batches      *storagemocks.BatchStore
	audit        *storagemocks.AuditStore
	notifier     *notifymocks.Notifier
}

func newTestHandler(t *testing.T) (*ApiHandler, *handlerMocks) {
	m := &handlerMocks{
		transactions: storagemocks.NewTransactionStore(t),
		batches:      storagemocks.NewBatchStore(t),
		audit:        storagemocks.NewAuditStore(t),
		notifier:     notifymocks.NewNotifier(t),
	}
	svc := orchestrator.New(orchestrator.Params{
		Transactions: m.transactions,
		Batches:      m.batches,
		Audit:        m.audit,
		Notifier:     m.notifier,
	})
	return NewApiHandler(svc, nil), m
}

func newTransactionBody() string {
	body, _ := json.Marshal(api.NewTransaction{
		SenderAccountNumber:      "1234567890",
		SenderRoutingCode:        "HDFC0001234",
		SenderName:               "Acme Corp",
		BeneficiaryAccountNumber: "0987654321",
		BeneficiaryRoutingCode:   "ICIC0004321",
		BeneficiaryName:          "Widget Ltd",
		Amount:                   500_000,
	})
	return string(body)
}

func TestCreateTransactionHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.transactions.On("CreateTransaction", mock.Anything, mock.Anything).
			Return(func(_ context.Context, tx *models.Transaction) (*models.Transaction, error) {
				return tx, nil
			})
		m.audit.On("LogEvent", mock.Anything, mock.Anything).Return(nil)
		m.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(newTransactionBody()))
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var got api.Transaction
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, string(models.INITIATED), got.Status)
		assert.True(t, strings.HasPrefix(got.ReferenceNumber, "RTGS"))
	})

	t.Run("ValidationErrorReturns422", func(t *testing.T) {
		h, _ := newTestHandler(t)

		var req api.NewTransaction
		require.NoError(t, json.Unmarshal([]byte(newTransactionBody()), &req))
		req.Amount = 50_000
		body, _ := json.Marshal(req)

		r := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(string(body)))
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, r)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var got api.Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "validation", got.Kind)
		assert.NotEmpty(t, got.Message)
	})

	t.Run("MalformedBodyReturns400", func(t *testing.T) {
		h, _ := newTestHandler(t)

		r := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetTransactionHandler(t *testing.T) {
	t.Run("NotFoundReturns404", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.transactions.On("GetTransaction", mock.Anything, "nope").
			Return(nil, storage.ErrTransactionNotFound)

		r := httptest.NewRequest(http.MethodGet, "/transactions/nope", nil)
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, r)

		require.Equal(t, http.StatusNotFound, rec.Code)

		var got api.Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "not_found", got.Kind)
	})
}

func TestProcessBatchHandler(t *testing.T) {
	t.Run("InvalidStateReturns409", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(&models.Batch{
			Id:             "batch-1",
			Status:         models.BatchSent,
			TransactionIds: []string{"tx-1"},
		}, nil)

		r := httptest.NewRequest(http.MethodPost, "/batches/batch-1/process", nil)
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, r)

		require.Equal(t, http.StatusConflict, rec.Code)

		var got api.Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "invalid_state", got.Kind)
	})

	t.Run("EmptyBatchReturns422", func(t *testing.T) {
		h, m := newTestHandler(t)

		m.batches.On("GetBatch", mock.Anything, "batch-1").Return(&models.Batch{
			Id:     "batch-1",
			Status: models.BatchCreated,
		}, nil)

		r := httptest.NewRequest(http.MethodPost, "/batches/batch-1/process", nil)
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, r)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var got api.Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "empty_batch", got.Kind)
	})
}

func TestSystemErrorIsOpaque(t *testing.T) {
	h, m := newTestHandler(t)

	m.transactions.On("GetTransaction", mock.Anything, "tx-1").
		Return(nil, assert.AnError)

	r := httptest.NewRequest(http.MethodGet, "/transactions/tx-1", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, r)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got api.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "system", got.Kind)
	assert.Equal(t, "internal error", got.Message)
}
