// Package mapping converts between the API wire types and the domain models.
package mapping

import (
	"github.com/rtgspay/settlement-engine/pkg/api"
	"github.com/rtgspay/settlement-engine/pkg/models"
	"github.com/rtgspay/settlement-engine/pkg/orchestrator"
)

// ToDomainPaymentDetails converts an API NewTransaction into the immutable
// payment instruction.
func ToDomainPaymentDetails(in *api.NewTransaction) models.PaymentDetails {
	priority := models.PaymentPriority(in.Priority)
	if priority == "" {
		priority = models.PriorityNormal
	}
	return models.PaymentDetails{
		SenderAccountNumber:      in.SenderAccountNumber,
		SenderRoutingCode:        in.SenderRoutingCode,
		SenderAccountType:        in.SenderAccountType,
		SenderName:               in.SenderName,
		BeneficiaryAccountNumber: in.BeneficiaryAccountNumber,
		BeneficiaryRoutingCode:   in.BeneficiaryRoutingCode,
		BeneficiaryAccountType:   in.BeneficiaryAccountType,
		BeneficiaryName:          in.BeneficiaryName,
		Amount:                   in.Amount,
		PaymentReference:         in.PaymentReference,
		Remarks:                  in.Remarks,
		Priority:                 priority,
	}
}

// ToApiTransaction converts a domain Transaction to its API view.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:              tx.Id,
		ReferenceNumber: tx.ReferenceNumber,
		UTRNumber:       tx.UTRNumber,
		Status:          string(tx.Status),
		Amount:          tx.Details.Amount,
		SenderName:      tx.Details.SenderName,
		BeneficiaryName: tx.Details.BeneficiaryName,
		ReturnReason:    tx.ReturnReason,
		ErrorMessage:    tx.ErrorMessage,
		CustomerID:      tx.CustomerID,
		Metadata:        tx.Metadata,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
		ProcessedAt:     tx.ProcessedAt,
		CompletedAt:     tx.CompletedAt,
	}
}

// ToApiTransactions converts a slice of domain transactions.
func ToApiTransactions(txns []models.Transaction) []api.Transaction {
	out := make([]api.Transaction, 0, len(txns))
	for i := range txns {
		out = append(out, *ToApiTransaction(&txns[i]))
	}
	return out
}

// ToApiBatch converts a domain Batch to its API view.
func ToApiBatch(batch *models.Batch) *api.Batch {
	return &api.Batch{
		Id:               batch.Id,
		BatchNumber:      batch.BatchNumber,
		Status:           string(batch.Status),
		TransactionIds:   batch.TransactionIds,
		TransactionCount: batch.TransactionCount,
		TotalAmount:      batch.TotalAmount,
		ScheduledAt:      batch.ScheduledAt,
		CreatedAt:        batch.CreatedAt,
		UpdatedAt:        batch.UpdatedAt,
		ProcessedAt:      batch.ProcessedAt,
		CompletedAt:      batch.CompletedAt,
	}
}

// ToApiBatches converts a slice of domain batches.
func ToApiBatches(batches []models.Batch) []api.Batch {
	out := make([]api.Batch, 0, len(batches))
	for i := range batches {
		out = append(out, *ToApiBatch(&batches[i]))
	}
	return out
}

// ToApiBatchStatus converts an orchestrator batch view to its API shape.
func ToApiBatchStatus(view *orchestrator.BatchView) *api.BatchStatus {
	return &api.BatchStatus{
		Batch:           ToApiBatch(view.Batch),
		RemoteStatus:    view.RemoteStatus,
		SuccessfulCount: view.SuccessfulCount,
		FailedCount:     view.FailedCount,
		RemoteDetails:   view.RemoteDetails,
	}
}

// ToApiAuditEvents converts a slice of domain audit events.
func ToApiAuditEvents(events []models.AuditEvent) []api.AuditEvent {
	out := make([]api.AuditEvent, 0, len(events))
	for _, e := range events {
		out = append(out, api.AuditEvent{
			EventID:       e.EventID,
			EventType:     e.EventType,
			TransactionID: e.TransactionID,
			BatchID:       e.BatchID,
			Details:       e.Details,
			Timestamp:     e.Timestamp,
		})
	}
	return out
}
