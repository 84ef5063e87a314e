package notifications

import (
	"context"
	"log"

	"escrowpay/internal/usecase/interfaces"
)

// LogNotificationSink is the default INotificationSink: it writes the message
// to the service log. Deployments with a real messaging channel swap in their
// own implementation behind the same interface.

type LogNotificationSink struct{}

var _ interfaces.INotificationSink = (*LogNotificationSink)(nil)

func NewLogNotificationSink() *LogNotificationSink {
	return &LogNotificationSink{}
}

func (s *LogNotificationSink) Notify(_ context.Context, userID string, messageKey string, notificationType string, metadata map[string]string) error {
	log.Printf("[notification][sink] user_id=%s key=%s type=%s metadata=%v", userID, messageKey, notificationType, metadata)
	return nil
}
