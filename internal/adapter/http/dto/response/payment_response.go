package response

import (
	"time"

	"escrowpay/internal/domain/entities"
)

type PaymentResponse struct {
	ID            string  `json:"id"`
	PayerID       string  `json:"payer_id"`
	BeneficiaryID string  `json:"beneficiary_id"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	EscrowStatus  string  `json:"escrow_status"`

	AuthorizationCode string  `json:"authorization_code,omitempty"`
	ProviderOrderID   string  `json:"provider_order_id,omitempty"`
	TransactionDate   string  `json:"transaction_date,omitempty"`
	Fee               float64 `json:"fee,omitempty"`
	FailureReason     string  `json:"failure_reason,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		PayerID:           p.PayerID,
		BeneficiaryID:     p.BeneficiaryID,
		Amount:            p.Amount,
		Status:            string(p.Status),
		EscrowStatus:      string(p.EscrowStatus),
		AuthorizationCode: p.AuthorizationCode,
		ProviderOrderID:   p.ProviderOrderID,
		TransactionDate:   p.TransactionDate,
		Fee:               p.Fee,
		FailureReason:     p.FailureReason,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		CompletedAt:       p.CompletedAt,
		FailedAt:          p.FailedAt,
	}
}

type EscrowResponse struct {
	PaymentID     string     `json:"payment_id"`
	Status        string     `json:"status"`
	HolderID      string     `json:"holder_id"`
	BeneficiaryID string     `json:"beneficiary_id"`
	Amount        float64    `json:"amount"`
	Fee           float64    `json:"fee"`
	NetAmount     float64    `json:"net_amount"`
	HeldAt        time.Time  `json:"held_at"`
	ReleasedAt    *time.Time `json:"released_at,omitempty"`
}

func FromEscrowRecord(e entities.EscrowRecord) EscrowResponse {
	return EscrowResponse{
		PaymentID:     e.PaymentID,
		Status:        string(e.Status),
		HolderID:      e.HolderID,
		BeneficiaryID: e.BeneficiaryID,
		Amount:        e.Amount,
		Fee:           e.Fee,
		NetAmount:     e.NetAmount,
		HeldAt:        e.HeldAt,
		ReleasedAt:    e.ReleasedAt,
	}
}

// WebhookAckResponse acknowledges receipt of a provider notification.
type WebhookAckResponse struct {
	Status string `json:"status"`
}
