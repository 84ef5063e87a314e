package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"escrowpay/internal/domain/entities"
	"escrowpay/internal/usecase/interfaces"
)

// DefaultBackoffSchedule is the retry backoff indexed by retry_count.
// maxRetries equals the schedule length; a row whose retry_count reaches it is
// escalated instead of retried.
var DefaultBackoffSchedule = []time.Duration{
	30 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
}

const (
	DefaultReconciliationBatchSize   = 10
	DefaultEscalationSuppressionTime = time.Hour
)

// IReconciliationUseCase is the periodic retry/escalation pass over the
// idempotency ledger. Each invocation is independent and idempotent; the
// scheduler just triggers it on a fixed interval.

type IReconciliationUseCase interface {
	RetryPending(ctx context.Context) (int, error)
	EscalateExhausted(ctx context.Context) (int, error)
}

type ReconciliationUseCase struct {
	ledger    interfaces.INotificationLedgerRepository
	processor *NotificationProcessor
	audit     interfaces.IAuditSink
	notifier  interfaces.INotificationSink

	backoff     []time.Duration
	batchSize   int
	suppression time.Duration
	operators   []string

	nowFn func() time.Time
}

var _ IReconciliationUseCase = (*ReconciliationUseCase)(nil)

func NewReconciliationUseCase(
	ledger interfaces.INotificationLedgerRepository,
	processor *NotificationProcessor,
	audit interfaces.IAuditSink,
	notifier interfaces.INotificationSink,
	operators []string,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ledger:      ledger,
		processor:   processor,
		audit:       audit,
		notifier:    notifier,
		backoff:     DefaultBackoffSchedule,
		batchSize:   DefaultReconciliationBatchSize,
		suppression: DefaultEscalationSuppressionTime,
		operators:   operators,
		nowFn:       time.Now,
	}
}

// MaxRetries is the retry budget, defined by the backoff schedule length.
func (u *ReconciliationUseCase) MaxRetries() int {
	return len(u.backoff)
}

// RetryPending re-runs processing for unprocessed notifications whose backoff
// window has elapsed. Returns the number of rows for which an attempt was made.
func (u *ReconciliationUseCase) RetryPending(ctx context.Context) (int, error) {
	now := u.nowFn().UTC()
	rows, err := u.ledger.ListUnprocessed(ctx, u.batchSize, u.MaxRetries())
	if err != nil {
		log.Printf("[reconciliation][usecase] pending scan failed err=%v", err)
		return 0, err
	}

	attempted := 0
	for _, row := range rows {
		next := u.nextEligibleAt(row)
		if now.Before(next) {
			continue
		}
		attempted++
		log.Printf("[reconciliation][usecase] retrying reference_no=%s retry_count=%d", row.ReferenceNo, row.RetryCount)
		if err := u.processor.ProcessByReferenceNo(ctx, row.ReferenceNo); err != nil {
			if errors.Is(err, ErrPaymentNotFound) {
				// Already marked processed-with-error by the processor.
				log.Printf("[reconciliation][usecase] reference_no=%s closed as orphaned", row.ReferenceNo)
				continue
			}
			log.Printf("[reconciliation][usecase] retry failed reference_no=%s err=%v", row.ReferenceNo, err)
		}
	}
	if attempted > 0 {
		log.Printf("[reconciliation][usecase] retry pass done attempted=%d scanned=%d", attempted, len(rows))
	}
	return attempted, nil
}

// nextEligibleAt computes when the row may be retried:
// (last_retry_at ?? received_at) + backoff[retry_count]. The schedule is
// monotonically non-decreasing, so consecutive failures never shorten the wait.
func (u *ReconciliationUseCase) nextEligibleAt(n entities.Notification) time.Time {
	base := n.ReceivedAt
	if n.LastRetryAt != nil {
		base = *n.LastRetryAt
	}
	idx := n.RetryCount
	if idx >= len(u.backoff) {
		idx = len(u.backoff) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return base.Add(u.backoff[idx])
}

// EscalateExhausted emits exactly one escalation per suppression window for
// rows that ran out of retry budget. The ledger's escalated_at stamp is a CAS,
// so repeated scheduler runs (or concurrent schedulers) within the window do
// not re-alert.
func (u *ReconciliationUseCase) EscalateExhausted(ctx context.Context) (int, error) {
	now := u.nowFn().UTC()
	rows, err := u.ledger.ListExhausted(ctx, u.batchSize, u.MaxRetries())
	if err != nil {
		log.Printf("[reconciliation][usecase] exhausted scan failed err=%v", err)
		return 0, err
	}

	escalated := 0
	for _, row := range rows {
		if err := u.ledger.MarkEscalated(ctx, row.ReferenceNo, now, u.suppression); err != nil {
			if errors.Is(err, interfaces.ErrEscalationSuppressed) {
				continue
			}
			log.Printf("[reconciliation][usecase] escalation stamp failed reference_no=%s err=%v", row.ReferenceNo, err)
			continue
		}
		escalated++
		log.Printf("[reconciliation][usecase] escalating reference_no=%s retry_count=%d last_error=%q", row.ReferenceNo, row.RetryCount, row.LastError)

		if u.audit != nil {
			if err := u.audit.Record(ctx, "payment.notification.retries_exhausted", entities.AuditSeverityCritical, row.ReferenceNo, map[string]interface{}{
				"retry_count": row.RetryCount,
				"last_error":  row.LastError,
				"received_at": row.ReceivedAt,
			}); err != nil {
				log.Printf("[reconciliation][usecase] escalation audit failed reference_no=%s err=%v", row.ReferenceNo, err)
			}
		}
		for _, operator := range u.operators {
			if u.notifier == nil {
				break
			}
			if err := u.notifier.Notify(ctx, operator, "payment.reconciliation.escalation", "operator_alert", map[string]string{
				"reference_no": row.ReferenceNo,
				"last_error":   row.LastError,
			}); err != nil {
				log.Printf("[reconciliation][usecase] operator notification failed operator=%s reference_no=%s err=%v", operator, row.ReferenceNo, err)
			}
		}
	}
	if escalated > 0 {
		log.Printf("[reconciliation][usecase] escalation pass done escalated=%d scanned=%d", escalated, len(rows))
	}
	return escalated, nil
}
