package interfaces

import (
	"context"
	"time"

	"escrowpay/internal/domain/entities"
)

// INotificationLedgerRepository abstracts DynamoDB persistence for the
// webhook idempotency ledger.
//
// The ledger is the single source of truth for duplicate detection and retry
// bookkeeping; no in-memory cache participates in idempotency decisions.
//
// Concurrency contract:
//   - Upsert only touches unprocessed rows (ErrNotificationAlreadyProcessed
//     otherwise) and resets retry bookkeeping.
//   - Claim is a compare-and-swap that admits at most one in-flight processing
//     attempt per reference_no (ErrProcessingInFlight for the loser). Stale
//     claims expire so a crashed attempt does not wedge the row.
//   - MarkProcessed and RecordFailure release the claim.
//   - MarkEscalated is a compare-and-swap on escalated_at so exactly one
//     escalation is recorded per suppression window (ErrEscalationSuppressed
//     for repeats).

type INotificationLedgerRepository interface {
	GetByReferenceNo(ctx context.Context, referenceNo string) (entities.Notification, error)
	Upsert(ctx context.Context, n entities.Notification) error
	Claim(ctx context.Context, referenceNo string, now time.Time) error
	MarkProcessed(ctx context.Context, referenceNo string, processedAt time.Time, note string) error
	RecordFailure(ctx context.Context, referenceNo string, at time.Time, cause string) (entities.Notification, error)
	ListUnprocessed(ctx context.Context, limit int, maxRetries int) ([]entities.Notification, error)
	ListExhausted(ctx context.Context, limit int, maxRetries int) ([]entities.Notification, error)
	MarkEscalated(ctx context.Context, referenceNo string, now time.Time, suppressionWindow time.Duration) error
}
