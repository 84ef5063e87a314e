package interfaces

import (
	"context"

	"escrowpay/internal/domain/entities"
)

// IAuditSink records audit trail events. Writes are best-effort from the
// caller's point of view: a failed audit write never rolls back a payment
// transition.

type IAuditSink interface {
	Record(ctx context.Context, eventType string, severity entities.AuditSeverity, resourceID string, data map[string]interface{}) error
}
