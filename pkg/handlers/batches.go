package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rtgspay/settlement-engine/pkg/api"
	"github.com/rtgspay/settlement-engine/pkg/mapping"
	"github.com/rtgspay/settlement-engine/pkg/models"
)

// CreateBatch opens a new settlement batch.
func (h *ApiHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req api.NewBatch
	if !h.decode(w, r, &req) {
		return
	}

	var scheduledAt time.Time
	if req.ScheduledAt != nil {
		scheduledAt = *req.ScheduledAt
	}

	batch, err := h.Service.CreateBatch(r.Context(), scheduledAt)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, mapping.ToApiBatch(batch))
}

// GetBatch retrieves a batch by id.
func (h *ApiHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.Service.GetBatch(r.Context(), chi.URLParam(r, "batchId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, mapping.ToApiBatch(batch))
}

// EnrollTransaction adds a transaction to an open batch.
func (h *ApiHandler) EnrollTransaction(w http.ResponseWriter, r *http.Request) {
	var req api.EnrollTransaction
	if !h.decode(w, r, &req) {
		return
	}

	batch, tx, err := h.Service.EnrollTransaction(r.Context(), chi.URLParam(r, "batchId"), req.TransactionID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, api.Enrollment{
		Batch:       mapping.ToApiBatch(batch),
		Transaction: mapping.ToApiTransaction(tx),
	})
}

// ProcessBatch submits a batch to the settlement network.
func (h *ApiHandler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.Service.ProcessBatch(r.Context(), chi.URLParam(r, "batchId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, mapping.ToApiBatch(batch))
}

// CheckBatchStatus looks up a batch by number and merges the remote view.
func (h *ApiHandler) CheckBatchStatus(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.CheckBatchStatus(r.Context(), chi.URLParam(r, "batchNumber"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, mapping.ToApiBatchStatus(view))
}

// ListBatchTransactions retrieves all transactions enrolled in a batch.
func (h *ApiHandler) ListBatchTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.Service.ListBatchTransactions(r.Context(), chi.URLParam(r, "batchId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, mapping.ToApiTransactions(txns))
}

// ListBatches lists batches by status or by scheduled date range.
func (h *ApiHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if status := query.Get("status"); status != "" {
		batches, err := h.Service.ListBatchesByStatus(r.Context(), models.BatchStatus(status))
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		h.respondJSON(w, r, http.StatusOK, mapping.ToApiBatches(batches))
		return
	}

	from, errFrom := time.Parse(time.RFC3339, query.Get("from"))
	to, errTo := time.Parse(time.RFC3339, query.Get("to"))
	if errFrom != nil || errTo != nil {
		h.respondJSON(w, r, http.StatusBadRequest, api.Error{
			Kind:    "bad_request",
			Message: "either status or RFC3339 from/to query parameters are required",
		})
		return
	}

	batches, err := h.Service.ListBatchesByDateRange(r.Context(), from, to)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, mapping.ToApiBatches(batches))
}
