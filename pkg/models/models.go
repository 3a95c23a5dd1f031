package models

import (
	"time"
)

// TransactionStatus defines the possible states of an RTGS transaction.
type TransactionStatus string

const (
	INITIATED          TransactionStatus = "INITIATED"
	VALIDATED          TransactionStatus = "VALIDATED"
	PROCESSING         TransactionStatus = "PROCESSING"
	PENDING_SETTLEMENT TransactionStatus = "PENDING_SETTLEMENT"
	COMPLETED          TransactionStatus = "COMPLETED"
	FAILED             TransactionStatus = "FAILED"
	RETURNED           TransactionStatus = "RETURNED"
	CANCELLED          TransactionStatus = "CANCELLED"
)

// BatchStatus defines the possible states of a settlement batch.
type BatchStatus string

const (
	BatchCreated    BatchStatus = "CREATED"
	BatchProcessing BatchStatus = "PROCESSING"
	BatchSent       BatchStatus = "SENT"
	BatchFailed     BatchStatus = "FAILED"
)

// PaymentPriority is the processing priority requested by the sender.
type PaymentPriority string

const (
	PriorityNormal PaymentPriority = "NORMAL"
	PriorityHigh   PaymentPriority = "HIGH"
	PriorityUrgent PaymentPriority = "URGENT"
)

// PaymentDetails is the immutable payment instruction carried by a transaction.
// Amounts are in currency minor units.
type PaymentDetails struct {
	SenderAccountNumber      string          `json:"sender_account_number" dynamodbav:"sender_account_number"`
	SenderRoutingCode        string          `json:"sender_routing_code" dynamodbav:"sender_routing_code"`
	SenderAccountType        string          `json:"sender_account_type" dynamodbav:"sender_account_type"`
	SenderName               string          `json:"sender_name" dynamodbav:"sender_name"`
	BeneficiaryAccountNumber string          `json:"beneficiary_account_number" dynamodbav:"beneficiary_account_number"`
	BeneficiaryRoutingCode   string          `json:"beneficiary_routing_code" dynamodbav:"beneficiary_routing_code"`
	BeneficiaryAccountType   string          `json:"beneficiary_account_type" dynamodbav:"beneficiary_account_type"`
	BeneficiaryName          string          `json:"beneficiary_name" dynamodbav:"beneficiary_name"`
	Amount                   int64           `json:"amount" dynamodbav:"amount"`
	PaymentReference         string          `json:"payment_reference" dynamodbav:"payment_reference"`
	Remarks                  string          `json:"remarks,omitempty" dynamodbav:"remarks,omitempty"`
	Priority                 PaymentPriority `json:"priority" dynamodbav:"priority"`
}

// Transaction represents the internal domain model for a single RTGS payment
// instruction and its lifecycle state. It includes dynamodbav tags for marshalling.
type Transaction struct {
	Id              string            `json:"id" dynamodbav:"id"`
	ReferenceNumber string            `json:"reference_number" dynamodbav:"reference_number"`
	UTRNumber       string            `json:"utr_number,omitempty" dynamodbav:"utr_number,omitempty"`
	Details         PaymentDetails    `json:"details" dynamodbav:"details"`
	Status          TransactionStatus `json:"status" dynamodbav:"status"`
	ReturnReason    string            `json:"return_reason,omitempty" dynamodbav:"return_reason,omitempty"`
	ErrorMessage    string            `json:"error_message,omitempty" dynamodbav:"error_message,omitempty"`
	CustomerID      string            `json:"customer_id,omitempty" dynamodbav:"customer_id,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty" dynamodbav:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" dynamodbav:"updated_at"`
	ProcessedAt     *time.Time        `json:"processed_at,omitempty" dynamodbav:"processed_at,omitempty"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty" dynamodbav:"completed_at,omitempty"`
}

// Batch represents a settlement window's container: an ordered set of enrolled
// transaction ids plus aggregate state. The Version field guards every mutation
// with optimistic locking.
type Batch struct {
	Id               string      `json:"id" dynamodbav:"id"`
	BatchNumber      string      `json:"batch_number" dynamodbav:"batch_number"`
	Status           BatchStatus `json:"status" dynamodbav:"status"`
	TransactionIds   []string    `json:"transaction_ids" dynamodbav:"transaction_ids"`
	TransactionCount int         `json:"transaction_count" dynamodbav:"transaction_count"`
	TotalAmount      int64       `json:"total_amount" dynamodbav:"total_amount"`
	ScheduledAt      time.Time   `json:"scheduled_at" dynamodbav:"scheduled_at"`
	Version          int64       `json:"version" dynamodbav:"version"`
	CreatedAt        time.Time   `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" dynamodbav:"updated_at"`
	ProcessedAt      *time.Time  `json:"processed_at,omitempty" dynamodbav:"processed_at,omitempty"`
	CompletedAt      *time.Time  `json:"completed_at,omitempty" dynamodbav:"completed_at,omitempty"`
	GSI1PK           string      `json:"-" dynamodbav:"gsi1pk"`
}

// AuditEvent is a single append-only record of a state transition.
type AuditEvent struct {
	EventID       string            `json:"event_id" dynamodbav:"event_id"`
	EventType     string            `json:"event_type" dynamodbav:"event_type"`
	TransactionID string            `json:"transaction_id,omitempty" dynamodbav:"transaction_id,omitempty"`
	BatchID       string            `json:"batch_id,omitempty" dynamodbav:"batch_id,omitempty"`
	ActorID       string            `json:"actor_id,omitempty" dynamodbav:"actor_id,omitempty"`
	Details       map[string]string `json:"details,omitempty" dynamodbav:"details,omitempty"`
	Timestamp     time.Time         `json:"timestamp" dynamodbav:"timestamp"`
	GSI1PK        string            `json:"-" dynamodbav:"gsi1pk"`
}

// Contains reports whether the batch already holds the given transaction id.
func (b *Batch) Contains(txID string) bool {
	for _, id := range b.TransactionIds {
		if id == txID {
			return true
		}
	}
	return false
}
