package entities

import "time"

// PaymentStatus represents the payment lifecycle outcome.
//
// Transitions are driven exclusively by provider notifications:
//   - pending -> completed (provider reported success)
//   - pending -> failed    (provider reported failure)
//
// completed and failed are terminal; a notification arriving for a terminal
// payment is a no-op.

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// EscrowStatus tracks the held-funds state carried on the payment row.

type EscrowStatus string

const (
	EscrowStatusPending  EscrowStatus = "pending"
	EscrowStatusHeld     EscrowStatus = "held"
	EscrowStatusReleased EscrowStatus = "released"
)

// Payment is the durable payment entity.
//
// Storage model (DynamoDB):
//   - PK: id (equal to the provider reference_no by construction)
//
// The row is created at initiation time and mutated only by the notification
// processor (success/failure transition) and the escrow release operation.

type Payment struct {
	ID            string        `json:"id"`
	PayerID       string        `json:"payer_id"`
	BeneficiaryID string        `json:"beneficiary_id"`
	Amount        float64       `json:"amount"`
	Status        PaymentStatus `json:"status"`
	EscrowStatus  EscrowStatus  `json:"escrow_status"`

	// Provider transaction metadata, stamped on completion.
	AuthorizationCode string  `json:"authorization_code,omitempty"`
	ProviderOrderID   string  `json:"provider_order_id,omitempty"`
	TransactionDate   string  `json:"transaction_date,omitempty"`
	Fee               float64 `json:"fee,omitempty"`

	FailureReason string `json:"failure_reason,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

// Terminal reports whether the payment reached a final status.
func (p Payment) Terminal() bool {
	return p.Status == PaymentStatusCompleted || p.Status == PaymentStatusFailed
}

// PaymentCompletion carries the provider metadata stamped on the
// pending -> completed transition.
type PaymentCompletion struct {
	AuthorizationCode string
	ProviderOrderID   string
	TransactionDate   string
	Fee               float64
	CompletedAt       time.Time
}
