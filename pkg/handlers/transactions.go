package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rtgspay/settlement-engine/pkg/api"
	"github.com/rtgspay/settlement-engine/pkg/mapping"
	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/orchestrator"
)

// CreateTransaction initiates a new payment.
func (h *ApiHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req api.NewTransaction
	if !h.decode(w, r, &req) {
		return
	}

	tx, err := h.Service.CreateTransaction(r.Context(), orchestrator.CreateTransactionInput{
		Details:    mapping.ToDomainPaymentDetails(&req),
		CustomerID: req.CustomerID,
		Metadata:   req.Metadata,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, mapping.ToApiTransaction(tx))
}

// GetTransaction retrieves a payment by id.
func (h *ApiHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.Service.GetTransaction(r.Context(), chi.URLParam(r, "transactionId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, mapping.ToApiTransaction(tx))
}

// ValidateTransaction re-runs business-rule validation and advances the payment.
func (h *ApiHandler) ValidateTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.Service.ValidateTransaction(r.Context(), chi.URLParam(r, "transactionId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, mapping.ToApiTransaction(tx))
}

// CancelTransaction cancels a non-terminal payment.
func (h *ApiHandler) CancelTransaction(w http.ResponseWriter, r *http.Request) {
	var req api.CancelTransaction
	if !h.decode(w, r, &req) {
		return
	}

	tx, err := h.Service.CancelTransaction(r.Context(), chi.URLParam(r, "transactionId"), req.Reason)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, mapping.ToApiTransaction(tx))
}

// ListTransactions lists payments filtered by status or customer.
func (h *ApiHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	if customerID := r.URL.Query().Get("customer_id"); customerID != "" {
		txns, err := h.Service.ListTransactionsByCustomerID(r.Context(), customerID)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		h.respondJSON(w, r, http.StatusOK, mapping.ToApiTransactions(txns))
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		h.respondJSON(w, r, http.StatusBadRequest, api.Error{
			Kind:    "bad_request",
			Message: "either status or customer_id query parameter is required",
		})
		return
	}

	txns, err := h.Service.ListTransactionsByStatus(r.Context(), models.TransactionStatus(status))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, mapping.ToApiTransactions(txns))
}

// GetTransactionAudit retrieves a payment's audit trail, most recent first.
func (h *ApiHandler) GetTransactionAudit(w http.ResponseWriter, r *http.Request) {
	const auditPageSize = 50

	events, err := h.Service.GetTransactionAudit(r.Context(), chi.URLParam(r, "transactionId"), auditPageSize)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, mapping.ToApiAuditEvents(events))
}
