// Package api defines the wire types of the HTTP surface. They are kept
// separate from the domain models so the two can evolve independently.
package api

import "time"

// NewTransaction is the request body for initiating a payment.
type NewTransaction struct {
	SenderAccountNumber      string            `json:"sender_account_number"`
	SenderRoutingCode        string            `json:"sender_routing_code"`
	SenderAccountType        string            `json:"sender_account_type,omitempty"`
	SenderName               string            `json:"sender_name"`
	BeneficiaryAccountNumber string            `json:"beneficiary_account_number"`
	BeneficiaryRoutingCode   string            `json:"beneficiary_routing_code"`
	BeneficiaryAccountType   string            `json:"beneficiary_account_type,omitempty"`
	BeneficiaryName          string            `json:"beneficiary_name"`
	Amount                   int64             `json:"amount"`
	PaymentReference         string            `json:"payment_reference,omitempty"`
	Remarks                  string            `json:"remarks,omitempty"`
	Priority                 string            `json:"priority,omitempty"`
	CustomerID               string            `json:"customer_id,omitempty"`
	Metadata                 map[string]string `json:"metadata,omitempty"`
}

// Transaction is the API view of a payment and its lifecycle state.
type Transaction struct {
	Id              string            `json:"id"`
	ReferenceNumber string            `json:"reference_number"`
	UTRNumber       string            `json:"utr_number,omitempty"`
	Status          string            `json:"status"`
	Amount          int64             `json:"amount"`
	SenderName      string            `json:"sender_name"`
	BeneficiaryName string            `json:"beneficiary_name"`
	ReturnReason    string            `json:"return_reason,omitempty"`
	ErrorMessage    string            `json:"error_message,omitempty"`
	CustomerID      string            `json:"customer_id,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	ProcessedAt     *time.Time        `json:"processed_at,omitempty"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
}

// CancelTransaction is the request body for cancelling a payment.
type CancelTransaction struct {
	Reason string `json:"reason,omitempty"`
}

// NewBatch is the request body for opening a settlement batch. ScheduledAt is
// optional; when omitted the next settlement slot is computed from the
// operating window.
type NewBatch struct {
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// Batch is the API view of a settlement batch.
type Batch struct {
	Id               string     `json:"id"`
	BatchNumber      string     `json:"batch_number"`
	Status           string     `json:"status"`
	TransactionIds   []string   `json:"transaction_ids"`
	TransactionCount int        `json:"transaction_count"`
	TotalAmount      int64      `json:"total_amount"`
	ScheduledAt      time.Time  `json:"scheduled_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// EnrollTransaction is the request body for enrolling a transaction into a batch.
type EnrollTransaction struct {
	TransactionID string `json:"transaction_id"`
}

// Enrollment is the response for a successful enrollment.
type Enrollment struct {
	Batch       *Batch       `json:"batch"`
	Transaction *Transaction `json:"transaction"`
}

// BatchStatus is a batch joined with the settlement network's remote view.
type BatchStatus struct {
	Batch           *Batch `json:"batch"`
	RemoteStatus    string `json:"remote_status,omitempty"`
	SuccessfulCount int    `json:"successful_count,omitempty"`
	FailedCount     int    `json:"failed_count,omitempty"`
	RemoteDetails   string `json:"remote_details,omitempty"`
}

// AuditEvent is one entry of a transaction's audit trail.
type AuditEvent struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	TransactionID string            `json:"transaction_id,omitempty"`
	BatchID       string            `json:"batch_id,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

// Error is the uniform error body. Kind is stable and machine-readable.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
