package interfaces

import "context"

// INotificationSink delivers user-facing messages (payer/beneficiary updates,
// operator escalations). Best-effort: failures are logged by callers, never
// failure-classified.

type INotificationSink interface {
	Notify(ctx context.Context, userID string, messageKey string, notificationType string, metadata map[string]string) error
}
