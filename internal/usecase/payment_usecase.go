package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"escrowpay/internal/domain/entities"
	"escrowpay/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidPayerID         = errors.New("invalid payer_id")
	ErrInvalidBeneficiaryID   = errors.New("invalid beneficiary_id")
	ErrInvalidPaymentAmount   = errors.New("invalid payment amount")
	ErrInvalidPaymentID       = errors.New("invalid payment id")
	ErrPaymentNotCompleted    = errors.New("payment not completed")
	ErrEscrowNotHeld          = errors.New("escrow not held")
	ErrGatewayNotConfigured   = errors.New("payment gateway not configured")
	ErrPaymentRepoUnavailable = errors.New("payment repository not configured")
)

// InitiatePaymentCommand is the domain command for opening a payment attempt.
type InitiatePaymentCommand struct {
	PayerID       string
	BeneficiaryID string
	Amount        float64
	Description   string
}

// IPaymentUseCase exposes the payment row lifecycle around the webhook core:
// initiation (creates the pending row later completed by notifications),
// reads, and the escrow release operation consuming the same record.

type IPaymentUseCase interface {
	Initiate(ctx context.Context, cmd InitiatePaymentCommand) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetEscrowByPaymentID(ctx context.Context, paymentID string) (entities.EscrowRecord, error)
	ReleaseEscrow(ctx context.Context, paymentID string) (entities.EscrowRecord, error)
}

type PaymentUseCase struct {
	payments interfaces.IPaymentRepository
	escrows  interfaces.IEscrowRepository
	gateway  interfaces.IPaymentProvider
	audit    interfaces.IAuditSink
	notifier interfaces.INotificationSink

	nowFn func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	payments interfaces.IPaymentRepository,
	escrows interfaces.IEscrowRepository,
	gateway interfaces.IPaymentProvider,
	audit interfaces.IAuditSink,
	notifier interfaces.INotificationSink,
) *PaymentUseCase {
	return &PaymentUseCase{
		payments: payments,
		escrows:  escrows,
		gateway:  gateway,
		audit:    audit,
		notifier: notifier,
		nowFn:    time.Now,
	}
}

func (u *PaymentUseCase) Initiate(ctx context.Context, cmd InitiatePaymentCommand) (entities.Payment, error) {
	payerID := strings.TrimSpace(cmd.PayerID)
	beneficiaryID := strings.TrimSpace(cmd.BeneficiaryID)
	log.Printf("[payment][usecase] initiate start payer_id=%s beneficiary_id=%s amount=%.2f", payerID, beneficiaryID, cmd.Amount)

	if payerID == "" {
		return entities.Payment{}, ErrInvalidPayerID
	}
	if beneficiaryID == "" {
		return entities.Payment{}, ErrInvalidBeneficiaryID
	}
	if cmd.Amount <= 0 {
		return entities.Payment{}, ErrInvalidPaymentAmount
	}
	if u.payments == nil {
		return entities.Payment{}, ErrPaymentRepoUnavailable
	}
	if u.gateway == nil {
		return entities.Payment{}, ErrGatewayNotConfigured
	}

	referenceNo, err := u.gateway.InitiatePayment(ctx, payerID, beneficiaryID, cmd.Amount, cmd.Description)
	if err != nil {
		log.Printf("[payment][usecase] gateway initiate failed payer_id=%s err=%v", payerID, err)
		return entities.Payment{}, err
	}
	if strings.TrimSpace(referenceNo) == "" {
		referenceNo = uuid.NewString()
	}

	now := u.nowFn().UTC()
	p := entities.Payment{
		ID:            referenceNo,
		PayerID:       payerID,
		BeneficiaryID: beneficiaryID,
		Amount:        cmd.Amount,
		Status:        entities.PaymentStatusPending,
		EscrowStatus:  entities.EscrowStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := u.payments.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment create failed reference_no=%s err=%v", referenceNo, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] initiate success reference_no=%s", created.ID)
	return created, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	p, err := u.payments.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) GetEscrowByPaymentID(ctx context.Context, paymentID string) (entities.EscrowRecord, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.EscrowRecord{}, ErrInvalidPaymentID
	}
	e, err := u.escrows.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return entities.EscrowRecord{}, err
	}
	if e.PaymentID == "" {
		return entities.EscrowRecord{}, ErrEscrowNotHeld
	}
	return e, nil
}

// ReleaseEscrow moves a held escrow to released: provider release call first,
// then the conditional escrow transition and the payment's escrow_status
// mirror. Only a completed payment with a held escrow is eligible.
func (u *PaymentUseCase) ReleaseEscrow(ctx context.Context, paymentID string) (entities.EscrowRecord, error) {
	paymentID = strings.TrimSpace(paymentID)
	log.Printf("[payment][usecase] escrow release start payment_id=%s", paymentID)
	if paymentID == "" {
		return entities.EscrowRecord{}, ErrInvalidPaymentID
	}
	if u.gateway == nil {
		return entities.EscrowRecord{}, ErrGatewayNotConfigured
	}

	payment, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		return entities.EscrowRecord{}, err
	}
	if payment.ID == "" {
		return entities.EscrowRecord{}, ErrPaymentNotFound
	}
	if payment.Status != entities.PaymentStatusCompleted {
		log.Printf("[payment][usecase] escrow release rejected payment_id=%s status=%s", paymentID, payment.Status)
		return entities.EscrowRecord{}, ErrPaymentNotCompleted
	}

	escrow, err := u.escrows.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return entities.EscrowRecord{}, err
	}
	if escrow.PaymentID == "" || escrow.Status != entities.EscrowRecordStatusHeld {
		log.Printf("[payment][usecase] escrow release rejected payment_id=%s escrow_status=%s", paymentID, escrow.Status)
		return entities.EscrowRecord{}, ErrEscrowNotHeld
	}

	if err := u.gateway.ReleaseEscrow(ctx, paymentID, escrow.NetAmount); err != nil {
		log.Printf("[payment][usecase] gateway release failed payment_id=%s err=%v", paymentID, err)
		return entities.EscrowRecord{}, err
	}

	now := u.nowFn().UTC()
	released, err := u.escrows.Release(ctx, paymentID, now)
	if err != nil {
		if errors.Is(err, interfaces.ErrEscrowStateConflict) {
			log.Printf("[payment][usecase] escrow already released payment_id=%s", paymentID)
			return entities.EscrowRecord{}, ErrEscrowNotHeld
		}
		log.Printf("[payment][usecase] escrow release write failed payment_id=%s err=%v", paymentID, err)
		return entities.EscrowRecord{}, err
	}
	if err := u.payments.SetEscrowStatus(ctx, paymentID, entities.EscrowStatusReleased, now); err != nil {
		log.Printf("[payment][usecase] escrow status mirror failed payment_id=%s err=%v", paymentID, err)
	}

	if u.audit != nil {
		if err := u.audit.Record(ctx, "escrow.released", entities.AuditSeverityInfo, paymentID, map[string]interface{}{
			"net_amount": released.NetAmount,
		}); err != nil {
			log.Printf("[payment][usecase] release audit failed payment_id=%s err=%v", paymentID, err)
		}
	}
	if u.notifier != nil && released.BeneficiaryID != "" {
		if err := u.notifier.Notify(ctx, released.BeneficiaryID, "escrow.released.beneficiary", "payment", map[string]string{
			"payment_id": paymentID,
		}); err != nil {
			log.Printf("[payment][usecase] release notification failed payment_id=%s err=%v", paymentID, err)
		}
	}
	log.Printf("[payment][usecase] escrow release success payment_id=%s", paymentID)
	return released, nil
}
