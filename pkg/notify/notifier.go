package notify

import (
	"context"
	"time"

	"github.com/rtgspay/settlement-engine/pkg/models"
)

// EventType identifies a customer-facing notification trigger.
type EventType string

const (
	EventTransactionInitiated EventType = "transaction.initiated"
	EventTransactionCompleted EventType = "transaction.completed"
	EventTransactionFailed    EventType = "transaction.failed"
	EventTransactionReturned  EventType = "transaction.returned"
	EventTransactionCancelled EventType = "transaction.cancelled"
)

// Event is the logical notification payload. Formatting and delivery to the
// customer are handled downstream.
type Event struct {
	Type            EventType `json:"type"`
	TransactionID   string    `json:"transaction_id"`
	ReferenceNumber string    `json:"reference_number"`
	UTRNumber       string    `json:"utr_number,omitempty"`
	Amount          int64     `json:"amount"`
	CustomerID      string    `json:"customer_id,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Notifier defines the interface for a component that publishes notification
// events. Calls are fire-and-forget from the orchestrator's point of view:
// a failed publish must never fail the primary operation.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// NewEvent builds a notification event from a transaction.
func NewEvent(eventType EventType, tx *models.Transaction) Event {
	return Event{
		Type:            eventType,
		TransactionID:   tx.Id,
		ReferenceNumber: tx.ReferenceNumber,
		UTRNumber:       tx.UTRNumber,
		Amount:          tx.Details.Amount,
		CustomerID:      tx.CustomerID,
		Timestamp:       time.Now(),
	}
}
