package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"escrowpay/internal/domain/entities"
	"escrowpay/internal/usecase/interfaces"
	mock_interfaces "escrowpay/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestParseNotificationPayload(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		succeeded bool
		wantErr   bool
	}{
		{name: "boolean true", raw: `{"reference_no":"r1","is_succeed":true}`, succeeded: true},
		{name: "boolean false", raw: `{"reference_no":"r1","is_succeed":false}`, succeeded: false},
		{name: "string true", raw: `{"reference_no":"r1","is_succeed":"true"}`, succeeded: true},
		{name: "string false", raw: `{"reference_no":"r1","is_succeed":"false"}`, succeeded: false},
		{name: "absent flag defaults false", raw: `{"reference_no":"r1"}`, succeeded: false},
		{name: "null flag defaults false", raw: `{"reference_no":"r1","is_succeed":null}`, succeeded: false},
		{name: "garbage flag", raw: `{"reference_no":"r1","is_succeed":"maybe"}`, wantErr: true},
		{name: "trims reference_no", raw: `{"reference_no":"  r1  ","is_succeed":true}`, succeeded: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := parseNotificationPayload(json.RawMessage(tc.raw))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ReferenceNo != "r1" {
				t.Fatalf("expected reference_no r1, got %q", p.ReferenceNo)
			}
			if bool(p.IsSucceed) != tc.succeeded {
				t.Fatalf("expected is_succeed=%t, got %t", tc.succeeded, bool(p.IsSucceed))
			}
		})
	}

	t.Run("empty payload", func(t *testing.T) {
		if _, err := parseNotificationPayload(nil); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestNotificationProcessor_ProcessByReferenceNo(t *testing.T) {
	t.Run("claim lost to concurrent attempt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockINotificationLedgerRepository(ctrl)
		p := NewNotificationProcessor(ledger, nil, nil, nil, nil)

		ledger.EXPECT().Claim(gomock.Any(), "ref-1", gomock.Any()).Return(interfaces.ErrProcessingInFlight)

		if err := p.ProcessByReferenceNo(context.Background(), "ref-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("already processed at claim time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockINotificationLedgerRepository(ctrl)
		p := NewNotificationProcessor(ledger, nil, nil, nil, nil)

		ledger.EXPECT().Claim(gomock.Any(), "ref-1", gomock.Any()).Return(interfaces.ErrNotificationAlreadyProcessed)

		if err := p.ProcessByReferenceNo(context.Background(), "ref-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("payment not found is terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockINotificationLedgerRepository(ctrl)
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		audit := mock_interfaces.NewMockIAuditSink(ctrl)
		p := NewNotificationProcessor(ledger, payments, nil, audit, nil)

		ledger.EXPECT().Claim(gomock.Any(), "ref-1", gomock.Any()).Return(nil)
		ledger.EXPECT().GetByReferenceNo(gomock.Any(), "ref-1").Return(entities.Notification{
			ReferenceNo: "ref-1",
			Succeeded:   true,
			RawPayload:  json.RawMessage(`{"reference_no":"ref-1","is_succeed":true}`),
		}, nil)
		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{}, nil)
		ledger.EXPECT().MarkProcessed(gomock.Any(), "ref-1", gomock.Any(), "payment not found").Return(nil)
		audit.EXPECT().Record(gomock.Any(), "payment.notification.orphaned", entities.AuditSeverityWarning, "ref-1", gomock.Any()).Return(nil)

		err := p.ProcessByReferenceNo(context.Background(), "ref-1")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("success applies completion and creates held escrow", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockINotificationLedgerRepository(ctrl)
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		escrows := mock_interfaces.NewMockIEscrowRepository(ctrl)
		audit := mock_interfaces.NewMockIAuditSink(ctrl)
		notifier := mock_interfaces.NewMockINotificationSink(ctrl)
		p := NewNotificationProcessor(ledger, payments, escrows, audit, notifier)

		payload := json.RawMessage(`{"reference_no":"ref-1","is_succeed":true,"amount":200,"authorization_code":"auth-1","order_id":"ord-1","xact_date":"2026-08-30","comission":6}`)

		ledger.EXPECT().Claim(gomock.Any(), "ref-1", gomock.Any()).Return(nil)
		ledger.EXPECT().GetByReferenceNo(gomock.Any(), "ref-1").Return(entities.Notification{
			ReferenceNo: "ref-1",
			Succeeded:   true,
			RawPayload:  payload,
		}, nil)
		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{
			ID:            "ref-1",
			PayerID:       "payer-1",
			BeneficiaryID: "shop-1",
			Amount:        200,
			Status:        entities.PaymentStatusPending,
		}, nil)
		payments.EXPECT().CompleteFromPending(gomock.Any(), "ref-1", gomock.AssignableToTypeOf(entities.PaymentCompletion{})).DoAndReturn(
			func(_ context.Context, id string, stamp entities.PaymentCompletion) (entities.Payment, error) {
				if stamp.AuthorizationCode != "auth-1" || stamp.ProviderOrderID != "ord-1" || stamp.Fee != 6 {
					t.Fatalf("unexpected completion stamp: %+v", stamp)
				}
				if stamp.CompletedAt.IsZero() {
					t.Fatalf("expected completed_at stamp")
				}
				return entities.Payment{
					ID:            id,
					PayerID:       "payer-1",
					BeneficiaryID: "shop-1",
					Amount:        200,
					Fee:           6,
					Status:        entities.PaymentStatusCompleted,
				}, nil
			},
		)
		escrows.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.EscrowRecord{})).DoAndReturn(
			func(_ context.Context, e entities.EscrowRecord) (entities.EscrowRecord, error) {
				if e.PaymentID != "ref-1" || e.Status != entities.EscrowRecordStatusHeld {
					t.Fatalf("unexpected escrow record: %+v", e)
				}
				if e.Amount != 200 || e.Fee != 6 || e.NetAmount != 194 {
					t.Fatalf("unexpected escrow amounts: %+v", e)
				}
				return e, nil
			},
		)
		payments.EXPECT().SetEscrowStatus(gomock.Any(), "ref-1", entities.EscrowStatusHeld, gomock.Any()).Return(nil)
		audit.EXPECT().Record(gomock.Any(), "payment.completed", entities.AuditSeverityInfo, "ref-1", gomock.Any()).Return(nil)
		notifier.EXPECT().Notify(gomock.Any(), "payer-1", "payment.completed.payer", "payment", gomock.Any()).Return(nil)
		notifier.EXPECT().Notify(gomock.Any(), "shop-1", "payment.completed.beneficiary", "payment", gomock.Any()).Return(nil)
		ledger.EXPECT().MarkProcessed(gomock.Any(), "ref-1", gomock.Any(), "").Return(nil)

		if err := p.ProcessByReferenceNo(context.Background(), "ref-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("terminal payment makes re-delivery a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockINotificationLedgerRepository(ctrl)
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		escrows := mock_interfaces.NewMockIEscrowRepository(ctrl)
		p := NewNotificationProcessor(ledger, payments, escrows, nil, nil)

		ledger.EXPECT().Claim(gomock.Any(), "ref-1", gomock.Any()).Return(nil)
		ledger.EXPECT().GetByReferenceNo(gomock.Any(), "ref-1").Return(entities.Notification{
			ReferenceNo: "ref-1",
			Succeeded:   true,
			RawPayload:  json.RawMessage(`{"reference_no":"ref-1","is_succeed":true}`),
		}, nil)
		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{
			ID:     "ref-1",
			Status: entities.PaymentStatusCompleted,
		}, nil)
		// No CompleteFromPending, no escrow create: terminal status wins.
		ledger.EXPECT().MarkProcessed(gomock.Any(), "ref-1", gomock.Any(), "").Return(nil)

		if err := p.ProcessByReferenceNo(context.Background(), "ref-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("lost completion race treated as terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockINotificationLedgerRepository(ctrl)
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		escrows := mock_interfaces.NewMockIEscrowRepository(ctrl)
		p := NewNotificationProcessor(ledger, payments, escrows, nil, nil)

		ledger.EXPECT().Claim(gomock.Any(), "ref-1", gomock.Any()).Return(nil)
		ledger.EXPECT().GetByReferenceNo(gomock.Any(), "ref-1").Return(entities.Notification{
			ReferenceNo: "ref-1",
			Succeeded:   true,
			RawPayload:  json.RawMessage(`{"reference_no":"ref-1","is_succeed":true}`),
		}, nil)
		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{
			ID:     "ref-1",
			Status: entities.PaymentStatusPending,
		}, nil)
		payments.EXPECT().CompleteFromPending(gomock.Any(), "ref-1", gomock.Any()).Return(entities.Payment{}, interfaces.ErrPaymentStateConflict)
		ledger.EXPECT().MarkProcessed(gomock.Any(), "ref-1", gomock.Any(), "").Return(nil)

		if err := p.ProcessByReferenceNo(context.Background(), "ref-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("best-effort side effects never fail the transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockINotificationLedgerRepository(ctrl)
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		escrows := mock_interfaces.NewMockIEscrowRepository(ctrl)
		audit := mock_interfaces.NewMockIAuditSink(ctrl)
		notifier := mock_interfaces.NewMockINotificationSink(ctrl)
		p := NewNotificationProcessor(ledger, payments, escrows, audit, notifier)

		ledger.EXPECT().Claim(gomock.Any(), "ref-1", gomock.Any()).Return(nil)
		ledger.EXPECT().GetByReferenceNo(gomock.Any(), "ref-1").Return(entities.Notification{
			ReferenceNo: "ref-1",
			Succeeded:   true,
			RawPayload:  json.RawMessage(`{"reference_no":"ref-1","is_succeed":true}`),
		}, nil)
		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{
			ID:            "ref-1",
			PayerID:       "payer-1",
			BeneficiaryID: "shop-1",
			Status:        entities.PaymentStatusPending,
		}, nil)
		payments.EXPECT().CompleteFromPending(gomock.Any(), "ref-1", gomock.Any()).Return(entities.Payment{
			ID:            "ref-1",
			PayerID:       "payer-1",
			BeneficiaryID: "shop-1",
			Status:        entities.PaymentStatusCompleted,
		}, nil)
		escrows.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.EscrowRecord{}, errors.New("escrow table down"))
		payments.EXPECT().SetEscrowStatus(gomock.Any(), "ref-1", entities.EscrowStatusHeld, gomock.Any()).Return(errors.New("mirror failed"))
		audit.EXPECT().Record(gomock.Any(), "payment.completed", entities.AuditSeverityInfo, "ref-1", gomock.Any()).Return(errors.New("audit down"))
		notifier.EXPECT().Notify(gomock.Any(), "payer-1", "payment.completed.payer", "payment", gomock.Any()).Return(errors.New("notify down"))
		notifier.EXPECT().Notify(gomock.Any(), "shop-1", "payment.completed.beneficiary", "payment", gomock.Any()).Return(errors.New("notify down"))
		ledger.EXPECT().MarkProcessed(gomock.Any(), "ref-1", gomock.Any(), "").Return(nil)

		if err := p.ProcessByReferenceNo(context.Background(), "ref-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("primary transition failure records retry bookkeeping", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockINotificationLedgerRepository(ctrl)
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		p := NewNotificationProcessor(ledger, payments, nil, nil, nil)

		ledger.EXPECT().Claim(gomock.Any(), "ref-1", gomock.Any()).Return(nil)
		ledger.EXPECT().GetByReferenceNo(gomock.Any(), "ref-1").Return(entities.Notification{
			ReferenceNo: "ref-1",
			Succeeded:   false,
			RawPayload:  json.RawMessage(`{"reference_no":"ref-1","is_succeed":false}`),
		}, nil)
		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{
			ID:     "ref-1",
			Status: entities.PaymentStatusPending,
		}, nil)
		payments.EXPECT().FailFromPending(gomock.Any(), "ref-1", "provider reported failure", gomock.Any()).Return(entities.Payment{}, errors.New("write throttled"))
		ledger.EXPECT().RecordFailure(gomock.Any(), "ref-1", gomock.Any(), "write throttled").Return(entities.Notification{RetryCount: 1}, nil)

		err := p.ProcessByReferenceNo(context.Background(), "ref-1")
		if err == nil || err.Error() != "write throttled" {
			t.Fatalf("expected write throttled, got %v", err)
		}
	})

	t.Run("row vanished after claim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ledger := mock_interfaces.NewMockINotificationLedgerRepository(ctrl)
		p := NewNotificationProcessor(ledger, nil, nil, nil, nil)

		ledger.EXPECT().Claim(gomock.Any(), "ref-1", gomock.Any()).Return(nil)
		ledger.EXPECT().GetByReferenceNo(gomock.Any(), "ref-1").Return(entities.Notification{}, nil)

		if err := p.ProcessByReferenceNo(context.Background(), "ref-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestNotificationProcessor_Apply(t *testing.T) {
	t.Run("unparseable stored payload falls back to succeeded flag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		p := NewNotificationProcessor(nil, payments, nil, nil, nil)

		payments.EXPECT().FailFromPending(gomock.Any(), "ref-1", "provider reported failure", gomock.Any()).Return(entities.Payment{
			ID:     "ref-1",
			Status: entities.PaymentStatusFailed,
		}, nil)

		err := p.Apply(context.Background(), entities.Payment{
			ID:     "ref-1",
			Status: entities.PaymentStatusPending,
		}, entities.Notification{
			ReferenceNo: "ref-1",
			Succeeded:   false,
			RawPayload:  json.RawMessage(`not json`),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing payment", func(t *testing.T) {
		p := NewNotificationProcessor(nil, nil, nil, nil, nil)
		err := p.Apply(context.Background(), entities.Payment{}, entities.Notification{ReferenceNo: "ref-1"})
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})
}
