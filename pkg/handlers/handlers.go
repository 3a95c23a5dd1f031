// Package handlers exposes the orchestrator over HTTP.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rtgspay/settlement-engine/pkg/api"
	"github.com/rtgspay/settlement-engine/pkg/logger"
	"github.com/rtgspay/settlement-engine/pkg/orchestrator"
)

// ApiHandler holds the application's dependencies and implements the HTTP
// surface.
type ApiHandler struct {
	Service *orchestrator.Service
	Logger  *logger.Logger
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(service *orchestrator.Service, log *logger.Logger) *ApiHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &ApiHandler{Service: service, Logger: log}
}

// Routes mounts every endpoint on a fresh router.
func (h *ApiHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/transactions", func(r chi.Router) {
		r.Post("/", h.CreateTransaction)
		r.Get("/", h.ListTransactions)
		r.Route("/{transactionId}", func(r chi.Router) {
			r.Get("/", h.GetTransaction)
			r.Post("/validate", h.ValidateTransaction)
			r.Post("/cancel", h.CancelTransaction)
			r.Get("/audit", h.GetTransactionAudit)
		})
	})

	r.Route("/batches", func(r chi.Router) {
		r.Post("/", h.CreateBatch)
		r.Get("/", h.ListBatches)
		r.Get("/number/{batchNumber}", h.CheckBatchStatus)
		r.Route("/{batchId}", func(r chi.Router) {
			r.Get("/", h.GetBatch)
			r.Get("/transactions", h.ListBatchTransactions)
			r.Post("/enroll", h.EnrollTransaction)
			r.Post("/process", h.ProcessBatch)
		})
	})

	return r
}

// statusForKind maps orchestrator error kinds onto HTTP status codes.
func statusForKind(kind orchestrator.Kind) int {
	switch kind {
	case orchestrator.KindValidation:
		return http.StatusUnprocessableEntity
	case orchestrator.KindNotFound:
		return http.StatusNotFound
	case orchestrator.KindInvalidState:
		return http.StatusConflict
	case orchestrator.KindEmptyBatch:
		return http.StatusUnprocessableEntity
	case orchestrator.KindExternalSystem:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func kindLabel(kind orchestrator.Kind) string {
	switch kind {
	case orchestrator.KindValidation:
		return "validation"
	case orchestrator.KindNotFound:
		return "not_found"
	case orchestrator.KindInvalidState:
		return "invalid_state"
	case orchestrator.KindEmptyBatch:
		return "empty_batch"
	case orchestrator.KindExternalSystem:
		return "external_system"
	default:
		return "system"
	}
}

func (h *ApiHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error(r.Context(), "failed to write response", "error", err)
	}
}

// respondError translates an orchestrator error into the uniform error body.
// System faults are logged with full context but surfaced opaquely.
func (h *ApiHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := orchestrator.KindOf(err)
	message := err.Error()
	if kind == orchestrator.KindSystem {
		h.Logger.Error(r.Context(), "request failed", "error", err)
		message = "internal error"
	}
	h.respondJSON(w, r, statusForKind(kind), api.Error{
		Kind:    kindLabel(kind),
		Message: message,
	})
}

func (h *ApiHandler) decode(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, api.Error{
			Kind:    "bad_request",
			Message: "invalid request body: " + err.Error(),
		})
		return false
	}
	return true
}
