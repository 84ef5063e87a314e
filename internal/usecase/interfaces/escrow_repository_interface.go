package interfaces

import (
	"context"
	"time"

	"escrowpay/internal/domain/entities"
)

// IEscrowRepository abstracts DynamoDB persistence for EscrowRecord.
//
// Create is conditional on no record existing for the payment, which keeps a
// re-delivered success notification from minting a second escrow record.

type IEscrowRepository interface {
	Create(ctx context.Context, e entities.EscrowRecord) (entities.EscrowRecord, error)
	GetByPaymentID(ctx context.Context, paymentID string) (entities.EscrowRecord, error)
	Release(ctx context.Context, paymentID string, releasedAt time.Time) (entities.EscrowRecord, error)
}
