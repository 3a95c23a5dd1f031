package storage

import (
	"context"

	"github.com/rtgspay/settlement-engine/pkg/models"
)

// AuditStore is the append-only record of every state transition. Writes are
// durable; callers decide whether a failed write may fail the primary operation.
type AuditStore interface {
	// LogEvent appends a single audit event.
	LogEvent(ctx context.Context, event *models.AuditEvent) error

	// ListEventsByTransaction retrieves the audit trail for one transaction,
	// most recent first.
	ListEventsByTransaction(ctx context.Context, txID string, limit int32) ([]models.AuditEvent, error)
}
