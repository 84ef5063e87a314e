package interfaces

import (
	"context"
	"time"

	"escrowpay/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// CompleteFromPending and FailFromPending are conditional transitions guarded
// on status = pending; when another writer already moved the payment to a
// terminal status they return ErrPaymentStateConflict, which callers treat as
// an idempotent re-delivery.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	CompleteFromPending(ctx context.Context, id string, stamp entities.PaymentCompletion) (entities.Payment, error)
	FailFromPending(ctx context.Context, id string, reason string, failedAt time.Time) (entities.Payment, error)
	SetEscrowStatus(ctx context.Context, id string, status entities.EscrowStatus, at time.Time) error
}
