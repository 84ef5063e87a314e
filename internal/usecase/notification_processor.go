package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"escrowpay/internal/domain/entities"
	"escrowpay/internal/usecase/interfaces"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
)

// notificationPayload is the provider webhook body shape consumed by the core.
// Only reference_no is required; is_succeed arrives as a boolean or as the
// string forms "true"/"false" depending on the provider integration.
type notificationPayload struct {
	ReferenceNo       string       `json:"reference_no"`
	IsSucceed         flexibleBool `json:"is_succeed"`
	Amount            float64      `json:"amount"`
	AuthorizationCode string       `json:"authorization_code"`
	OrderID           string       `json:"order_id"`
	XactDate          string       `json:"xact_date"`
	Comission         float64      `json:"comission"`
}

// flexibleBool accepts JSON true/false and the string forms "true"/"false".
type flexibleBool bool

func (b *flexibleBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		*b = false
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean value %q", s)
	}
	*b = flexibleBool(v)
	return nil
}

func parseNotificationPayload(raw json.RawMessage) (notificationPayload, error) {
	var p notificationPayload
	if len(raw) == 0 {
		return p, errors.New("empty notification payload")
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, err
	}
	p.ReferenceNo = strings.TrimSpace(p.ReferenceNo)
	return p, nil
}

// NotificationProcessor applies a stored, unprocessed notification to its
// payment and escrow rows. It is shared by the webhook ingestion path and the
// reconciliation path; both re-read current state from storage on every
// attempt, so the authoritative state always lives in the store.

type NotificationProcessor struct {
	ledger   interfaces.INotificationLedgerRepository
	payments interfaces.IPaymentRepository
	escrows  interfaces.IEscrowRepository
	audit    interfaces.IAuditSink
	notifier interfaces.INotificationSink

	nowFn func() time.Time
}

func NewNotificationProcessor(
	ledger interfaces.INotificationLedgerRepository,
	payments interfaces.IPaymentRepository,
	escrows interfaces.IEscrowRepository,
	audit interfaces.IAuditSink,
	notifier interfaces.INotificationSink,
) *NotificationProcessor {
	return &NotificationProcessor{
		ledger:   ledger,
		payments: payments,
		escrows:  escrows,
		audit:    audit,
		notifier: notifier,
		nowFn:    time.Now,
	}
}

// ProcessByReferenceNo runs one processing attempt for the ledger row:
// claim -> re-read notification and payment -> apply -> stamp outcome.
//
// Returns nil when the row was applied, was already processed, or is claimed
// by a concurrent attempt (the reconciliation path picks it up later).
// ErrPaymentNotFound is terminal: the row is marked processed-with-error so it
// is never retried. Any other error has already been recorded as retry
// bookkeeping on the row.
func (p *NotificationProcessor) ProcessByReferenceNo(ctx context.Context, referenceNo string) error {
	now := p.nowFn().UTC()

	if err := p.ledger.Claim(ctx, referenceNo, now); err != nil {
		if errors.Is(err, interfaces.ErrProcessingInFlight) {
			log.Printf("[notification][processor] claim lost reference_no=%s (concurrent attempt in flight)", referenceNo)
			return nil
		}
		if errors.Is(err, interfaces.ErrNotificationAlreadyProcessed) {
			log.Printf("[notification][processor] already processed reference_no=%s", referenceNo)
			return nil
		}
		log.Printf("[notification][processor] claim failed reference_no=%s err=%v", referenceNo, err)
		return err
	}

	notif, err := p.ledger.GetByReferenceNo(ctx, referenceNo)
	if err != nil {
		log.Printf("[notification][processor] ledger read failed reference_no=%s err=%v", referenceNo, err)
		_, _ = p.ledger.RecordFailure(ctx, referenceNo, p.nowFn().UTC(), err.Error())
		return err
	}
	if notif.ReferenceNo == "" {
		log.Printf("[notification][processor] ledger row vanished reference_no=%s", referenceNo)
		return nil
	}
	if notif.Processed() {
		return nil
	}

	payment, err := p.payments.GetByID(ctx, referenceNo)
	if err != nil {
		log.Printf("[notification][processor] payment read failed reference_no=%s err=%v", referenceNo, err)
		_, _ = p.ledger.RecordFailure(ctx, referenceNo, p.nowFn().UTC(), err.Error())
		return err
	}
	if payment.ID == "" {
		// Retrying cannot conjure a missing payment row; stop further attempts.
		log.Printf("[notification][processor] payment not found reference_no=%s; marking processed with error", referenceNo)
		if mErr := p.ledger.MarkProcessed(ctx, referenceNo, p.nowFn().UTC(), ErrPaymentNotFound.Error()); mErr != nil {
			log.Printf("[notification][processor] mark processed failed reference_no=%s err=%v", referenceNo, mErr)
		}
		p.recordAudit(ctx, "payment.notification.orphaned", entities.AuditSeverityWarning, referenceNo, map[string]interface{}{
			"reason": ErrPaymentNotFound.Error(),
		})
		return ErrPaymentNotFound
	}

	if err := p.Apply(ctx, payment, notif); err != nil {
		if _, rErr := p.ledger.RecordFailure(ctx, referenceNo, p.nowFn().UTC(), err.Error()); rErr != nil {
			log.Printf("[notification][processor] record failure failed reference_no=%s err=%v", referenceNo, rErr)
		}
		return err
	}

	if err := p.ledger.MarkProcessed(ctx, referenceNo, p.nowFn().UTC(), ""); err != nil {
		log.Printf("[notification][processor] mark processed failed reference_no=%s err=%v", referenceNo, err)
		return err
	}
	log.Printf("[notification][processor] processed reference_no=%s succeeded=%t", referenceNo, notif.Succeeded)
	return nil
}

// Apply drives the payment state machine for one stored notification.
//
//	pending --succeeded=true--> completed (+ escrow held, payer/beneficiary
//	                                       notifications, audit record)
//	pending --succeeded=false--> failed   (+ payer notification, audit record)
//	terminal --any-->             no-op   (idempotent re-delivery)
//
// Only the primary payment status write is failure-classified; escrow
// creation, notifications and audit records are best-effort.
func (p *NotificationProcessor) Apply(ctx context.Context, payment entities.Payment, notif entities.Notification) error {
	if payment.ID == "" {
		return ErrPaymentNotFound
	}
	if payment.Terminal() {
		log.Printf("[notification][processor] payment already terminal reference_no=%s status=%s; no-op", payment.ID, payment.Status)
		return nil
	}

	fields, err := parseNotificationPayload(notif.RawPayload)
	if err != nil {
		log.Printf("[notification][processor] payload parse failed reference_no=%s err=%v; using succeeded flag only", payment.ID, err)
		fields = notificationPayload{ReferenceNo: payment.ID}
	}

	now := p.nowFn().UTC()
	if notif.Succeeded {
		return p.applyCompleted(ctx, payment, fields, now)
	}
	return p.applyFailed(ctx, payment, now)
}

func (p *NotificationProcessor) applyCompleted(ctx context.Context, payment entities.Payment, fields notificationPayload, now time.Time) error {
	stamp := entities.PaymentCompletion{
		AuthorizationCode: fields.AuthorizationCode,
		ProviderOrderID:   fields.OrderID,
		TransactionDate:   fields.XactDate,
		Fee:               fields.Comission,
		CompletedAt:       now,
	}

	completed, err := p.payments.CompleteFromPending(ctx, payment.ID, stamp)
	if err != nil {
		if errors.Is(err, interfaces.ErrPaymentStateConflict) {
			// Another writer already finished the transition.
			log.Printf("[notification][processor] complete lost race reference_no=%s; treating as terminal", payment.ID)
			return nil
		}
		log.Printf("[notification][processor] complete transition failed reference_no=%s err=%v", payment.ID, err)
		return err
	}
	log.Printf("[notification][processor] payment completed reference_no=%s amount=%.2f fee=%.2f", completed.ID, completed.Amount, completed.Fee)

	// Everything below is best-effort: logged on failure, never rolled back.
	escrow := entities.EscrowRecord{
		PaymentID:     completed.ID,
		Status:        entities.EscrowRecordStatusHeld,
		HolderID:      completed.PayerID,
		BeneficiaryID: completed.BeneficiaryID,
		Amount:        completed.Amount,
		Fee:           completed.Fee,
		NetAmount:     completed.Amount - completed.Fee,
		HeldAt:        now,
	}
	if _, err := p.escrows.Create(ctx, escrow); err != nil {
		if errors.Is(err, interfaces.ErrEscrowAlreadyExists) {
			log.Printf("[notification][processor] escrow record already exists reference_no=%s", completed.ID)
		} else {
			log.Printf("[notification][processor] escrow record create failed reference_no=%s err=%v", completed.ID, err)
		}
	}
	if err := p.payments.SetEscrowStatus(ctx, completed.ID, entities.EscrowStatusHeld, now); err != nil {
		log.Printf("[notification][processor] escrow status update failed reference_no=%s err=%v", completed.ID, err)
	}

	p.recordAudit(ctx, "payment.completed", entities.AuditSeverityInfo, completed.ID, map[string]interface{}{
		"amount":             completed.Amount,
		"fee":                completed.Fee,
		"authorization_code": fields.AuthorizationCode,
		"provider_order_id":  fields.OrderID,
	})
	p.notify(ctx, completed.PayerID, "payment.completed.payer", "payment", map[string]string{
		"reference_no": completed.ID,
	})
	p.notify(ctx, completed.BeneficiaryID, "payment.completed.beneficiary", "payment", map[string]string{
		"reference_no": completed.ID,
	})
	return nil
}

func (p *NotificationProcessor) applyFailed(ctx context.Context, payment entities.Payment, now time.Time) error {
	reason := "provider reported failure"

	failed, err := p.payments.FailFromPending(ctx, payment.ID, reason, now)
	if err != nil {
		if errors.Is(err, interfaces.ErrPaymentStateConflict) {
			log.Printf("[notification][processor] fail lost race reference_no=%s; treating as terminal", payment.ID)
			return nil
		}
		log.Printf("[notification][processor] fail transition failed reference_no=%s err=%v", payment.ID, err)
		return err
	}
	log.Printf("[notification][processor] payment failed reference_no=%s reason=%q", failed.ID, reason)

	p.recordAudit(ctx, "payment.failed", entities.AuditSeverityInfo, failed.ID, map[string]interface{}{
		"reason": reason,
	})
	p.notify(ctx, failed.PayerID, "payment.failed.payer", "payment", map[string]string{
		"reference_no": failed.ID,
	})
	return nil
}

func (p *NotificationProcessor) recordAudit(ctx context.Context, eventType string, severity entities.AuditSeverity, resourceID string, data map[string]interface{}) {
	if p.audit == nil {
		return
	}
	if err := p.audit.Record(ctx, eventType, severity, resourceID, data); err != nil {
		log.Printf("[notification][processor] audit record failed event=%s resource=%s err=%v", eventType, resourceID, err)
	}
}

func (p *NotificationProcessor) notify(ctx context.Context, userID, messageKey, notificationType string, metadata map[string]string) {
	if p.notifier == nil || strings.TrimSpace(userID) == "" {
		return
	}
	if err := p.notifier.Notify(ctx, userID, messageKey, notificationType, metadata); err != nil {
		log.Printf("[notification][processor] user notification failed user=%s key=%s err=%v", userID, messageKey, err)
	}
}
