package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"escrowpay/internal/domain/entities"
	"escrowpay/internal/usecase/interfaces"
)

var (
	ErrInvalidSignature     = errors.New("invalid webhook signature")
	ErrMissingReferenceNo   = errors.New("missing reference_no")
	ErrInvalidWebhookBody   = errors.New("invalid webhook body")
	ErrWebhookNotConfigured = errors.New("webhook ingestion not configured")
)

// IWebhookUseCase is the provider-facing ingestion entry point.
//
// Ingest receives the exact webhook body plus the optional signature headers,
// performs signature and idempotency checks, persists the notification in the
// ledger and runs one synchronous processing attempt. Authoritative retry of
// failed attempts is owned by the reconciliation pass, not by the provider's
// own redelivery.

type IWebhookUseCase interface {
	Ingest(ctx context.Context, payload json.RawMessage, signature string, timestamp string) error
}

type WebhookUseCase struct {
	ledger    interfaces.INotificationLedgerRepository
	provider  interfaces.IPaymentProvider
	processor *NotificationProcessor

	nowFn func() time.Time
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(ledger interfaces.INotificationLedgerRepository, provider interfaces.IPaymentProvider, processor *NotificationProcessor) *WebhookUseCase {
	return &WebhookUseCase{
		ledger:    ledger,
		provider:  provider,
		processor: processor,
		nowFn:     time.Now,
	}
}

func (u *WebhookUseCase) Ingest(ctx context.Context, payload json.RawMessage, signature string, timestamp string) error {
	log.Printf("[webhook][usecase] ingest start payload_len=%d signed=%t", len(payload), signature != "")
	if u.ledger == nil || u.processor == nil {
		return ErrWebhookNotConfigured
	}

	if signature != "" {
		if u.provider == nil {
			return ErrWebhookNotConfigured
		}
		if err := u.provider.VerifySignature(payload, signature, timestamp); err != nil {
			log.Printf("[webhook][usecase] signature verification failed err=%v", err)
			return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
	}

	fields, err := parseNotificationPayload(payload)
	if err != nil {
		log.Printf("[webhook][usecase] payload parse failed err=%v", err)
		return fmt.Errorf("%w: %v", ErrInvalidWebhookBody, err)
	}
	if fields.ReferenceNo == "" {
		log.Printf("[webhook][usecase] missing reference_no")
		return ErrMissingReferenceNo
	}
	referenceNo := fields.ReferenceNo

	existing, err := u.ledger.GetByReferenceNo(ctx, referenceNo)
	if err != nil {
		log.Printf("[webhook][usecase] ledger read failed reference_no=%s err=%v", referenceNo, err)
		return err
	}
	if existing.Processed() {
		// Duplicate of an already-applied notification: acknowledge, change nothing.
		log.Printf("[webhook][usecase] duplicate of processed notification reference_no=%s; no-op", referenceNo)
		return nil
	}

	// The provider's most recent statement of fact wins for unprocessed rows:
	// a resend overwrites the payload and resets the retry budget.
	notif := entities.Notification{
		ReferenceNo: referenceNo,
		RawPayload:  payload,
		Succeeded:   bool(fields.IsSucceed),
		ReceivedAt:  u.nowFn().UTC(),
		RetryCount:  0,
	}
	if err := u.ledger.Upsert(ctx, notif); err != nil {
		if errors.Is(err, interfaces.ErrNotificationAlreadyProcessed) {
			// A concurrent attempt finished processing between the read and the
			// upsert; the stored outcome stands.
			log.Printf("[webhook][usecase] notification processed concurrently reference_no=%s; no-op", referenceNo)
			return nil
		}
		log.Printf("[webhook][usecase] ledger upsert failed reference_no=%s err=%v", referenceNo, err)
		return err
	}
	log.Printf("[webhook][usecase] notification recorded reference_no=%s succeeded=%t", referenceNo, bool(fields.IsSucceed))

	if err := u.processor.ProcessByReferenceNo(ctx, referenceNo); err != nil {
		// Retry bookkeeping is already on the ledger row (or the row is marked
		// terminal for non-retryable failures); surface the failure to the caller.
		log.Printf("[webhook][usecase] processing failed reference_no=%s err=%v", referenceNo, err)
		return err
	}
	log.Printf("[webhook][usecase] ingest success reference_no=%s", referenceNo)
	return nil
}
