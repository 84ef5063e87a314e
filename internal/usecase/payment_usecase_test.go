package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"escrowpay/internal/domain/entities"
	"escrowpay/internal/usecase/interfaces"
	mock_interfaces "escrowpay/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestPaymentUseCase_Initiate(t *testing.T) {
	t.Run("invalid payer id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil)
		_, err := uc.Initiate(context.Background(), InitiatePaymentCommand{PayerID: "   ", BeneficiaryID: "shop-1", Amount: 10})
		if !errors.Is(err, ErrInvalidPayerID) {
			t.Fatalf("expected ErrInvalidPayerID, got %v", err)
		}
	})

	t.Run("invalid beneficiary id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil)
		_, err := uc.Initiate(context.Background(), InitiatePaymentCommand{PayerID: "payer-1", Amount: 10})
		if !errors.Is(err, ErrInvalidBeneficiaryID) {
			t.Fatalf("expected ErrInvalidBeneficiaryID, got %v", err)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil)
		_, err := uc.Initiate(context.Background(), InitiatePaymentCommand{PayerID: "payer-1", BeneficiaryID: "shop-1", Amount: 0})
		if !errors.Is(err, ErrInvalidPaymentAmount) {
			t.Fatalf("expected ErrInvalidPaymentAmount, got %v", err)
		}
	})

	t.Run("gateway error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentProvider(ctrl)
		uc := NewPaymentUseCase(payments, nil, gateway, nil, nil)

		gateway.EXPECT().InitiatePayment(gomock.Any(), "payer-1", "shop-1", 99.9, "repair").Return("", errors.New("provider down"))

		_, err := uc.Initiate(context.Background(), InitiatePaymentCommand{PayerID: "payer-1", BeneficiaryID: "shop-1", Amount: 99.9, Description: "repair"})
		if err == nil || err.Error() != "provider down" {
			t.Fatalf("expected provider down, got %v", err)
		}
	})

	t.Run("creates pending payment keyed by reference_no", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentProvider(ctrl)
		uc := NewPaymentUseCase(payments, nil, gateway, nil, nil)

		gateway.EXPECT().InitiatePayment(gomock.Any(), "payer-1", "shop-1", 99.9, "repair").Return("ref-42", nil)
		payments.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.ID != "ref-42" || p.Status != entities.PaymentStatusPending || p.EscrowStatus != entities.EscrowStatusPending {
					t.Fatalf("unexpected payment: %+v", p)
				}
				if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
					t.Fatalf("expected timestamps")
				}
				return p, nil
			},
		)

		res, err := uc.Initiate(context.Background(), InitiatePaymentCommand{PayerID: " payer-1 ", BeneficiaryID: "shop-1", Amount: 99.9, Description: "repair"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "ref-42" {
			t.Fatalf("expected reference_no as id, got %q", res.ID)
		}
	})

	t.Run("generates reference when gateway returns none", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentProvider(ctrl)
		uc := NewPaymentUseCase(payments, nil, gateway, nil, nil)

		gateway.EXPECT().InitiatePayment(gomock.Any(), "payer-1", "shop-1", 10.0, "").Return("", nil)
		payments.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.ID == "" {
					t.Fatalf("expected generated id")
				}
				return p, nil
			},
		)

		if _, err := uc.Initiate(context.Background(), InitiatePaymentCommand{PayerID: "payer-1", BeneficiaryID: "shop-1", Amount: 10}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestPaymentUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, nil, nil)
		_, err := uc.GetByID(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(payments, nil, nil, nil, nil)

		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{}, nil)

		_, err := uc.GetByID(context.Background(), "ref-1")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(payments, nil, nil, nil, nil)

		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{ID: "ref-1"}, nil)

		p, err := uc.GetByID(context.Background(), " ref-1 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != "ref-1" {
			t.Fatalf("unexpected payment: %+v", p)
		}
	})
}

func TestPaymentUseCase_ReleaseEscrow(t *testing.T) {
	heldEscrow := entities.EscrowRecord{
		PaymentID:     "ref-1",
		Status:        entities.EscrowRecordStatusHeld,
		HolderID:      "payer-1",
		BeneficiaryID: "shop-1",
		Amount:        200,
		Fee:           6,
		NetAmount:     194,
	}

	t.Run("payment not completed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentProvider(ctrl)
		uc := NewPaymentUseCase(payments, nil, gateway, nil, nil)

		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{
			ID:     "ref-1",
			Status: entities.PaymentStatusPending,
		}, nil)

		_, err := uc.ReleaseEscrow(context.Background(), "ref-1")
		if !errors.Is(err, ErrPaymentNotCompleted) {
			t.Fatalf("expected ErrPaymentNotCompleted, got %v", err)
		}
	})

	t.Run("escrow not held", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		escrows := mock_interfaces.NewMockIEscrowRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentProvider(ctrl)
		uc := NewPaymentUseCase(payments, escrows, gateway, nil, nil)

		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{
			ID:     "ref-1",
			Status: entities.PaymentStatusCompleted,
		}, nil)
		released := heldEscrow
		released.Status = entities.EscrowRecordStatusReleased
		escrows.EXPECT().GetByPaymentID(gomock.Any(), "ref-1").Return(released, nil)

		_, err := uc.ReleaseEscrow(context.Background(), "ref-1")
		if !errors.Is(err, ErrEscrowNotHeld) {
			t.Fatalf("expected ErrEscrowNotHeld, got %v", err)
		}
	})

	t.Run("gateway release failure aborts before the write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		escrows := mock_interfaces.NewMockIEscrowRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentProvider(ctrl)
		uc := NewPaymentUseCase(payments, escrows, gateway, nil, nil)

		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{
			ID:     "ref-1",
			Status: entities.PaymentStatusCompleted,
		}, nil)
		escrows.EXPECT().GetByPaymentID(gomock.Any(), "ref-1").Return(heldEscrow, nil)
		gateway.EXPECT().ReleaseEscrow(gomock.Any(), "ref-1", 194.0).Return(errors.New("provider down"))

		_, err := uc.ReleaseEscrow(context.Background(), "ref-1")
		if err == nil || err.Error() != "provider down" {
			t.Fatalf("expected provider down, got %v", err)
		}
	})

	t.Run("concurrent release maps to ErrEscrowNotHeld", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		escrows := mock_interfaces.NewMockIEscrowRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentProvider(ctrl)
		uc := NewPaymentUseCase(payments, escrows, gateway, nil, nil)

		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{
			ID:     "ref-1",
			Status: entities.PaymentStatusCompleted,
		}, nil)
		escrows.EXPECT().GetByPaymentID(gomock.Any(), "ref-1").Return(heldEscrow, nil)
		gateway.EXPECT().ReleaseEscrow(gomock.Any(), "ref-1", 194.0).Return(nil)
		escrows.EXPECT().Release(gomock.Any(), "ref-1", gomock.Any()).Return(entities.EscrowRecord{}, interfaces.ErrEscrowStateConflict)

		_, err := uc.ReleaseEscrow(context.Background(), "ref-1")
		if !errors.Is(err, ErrEscrowNotHeld) {
			t.Fatalf("expected ErrEscrowNotHeld, got %v", err)
		}
	})

	t.Run("release success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIPaymentRepository(ctrl)
		escrows := mock_interfaces.NewMockIEscrowRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentProvider(ctrl)
		audit := mock_interfaces.NewMockIAuditSink(ctrl)
		notifier := mock_interfaces.NewMockINotificationSink(ctrl)
		uc := NewPaymentUseCase(payments, escrows, gateway, audit, notifier)

		payments.EXPECT().GetByID(gomock.Any(), "ref-1").Return(entities.Payment{
			ID:     "ref-1",
			Status: entities.PaymentStatusCompleted,
		}, nil)
		escrows.EXPECT().GetByPaymentID(gomock.Any(), "ref-1").Return(heldEscrow, nil)
		gateway.EXPECT().ReleaseEscrow(gomock.Any(), "ref-1", 194.0).Return(nil)

		releasedAt := time.Now().UTC()
		released := heldEscrow
		released.Status = entities.EscrowRecordStatusReleased
		released.ReleasedAt = &releasedAt
		escrows.EXPECT().Release(gomock.Any(), "ref-1", gomock.Any()).Return(released, nil)
		payments.EXPECT().SetEscrowStatus(gomock.Any(), "ref-1", entities.EscrowStatusReleased, gomock.Any()).Return(nil)
		audit.EXPECT().Record(gomock.Any(), "escrow.released", entities.AuditSeverityInfo, "ref-1", gomock.Any()).Return(nil)
		notifier.EXPECT().Notify(gomock.Any(), "shop-1", "escrow.released.beneficiary", "payment", gomock.Any()).Return(nil)

		res, err := uc.ReleaseEscrow(context.Background(), "ref-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.EscrowRecordStatusReleased || res.ReleasedAt == nil {
			t.Fatalf("unexpected escrow record: %+v", res)
		}
	})
}
