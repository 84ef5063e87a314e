package request

import "strings"

// InitiatePaymentRequest opens a payment attempt on behalf of a payer.
type InitiatePaymentRequest struct {
	PayerID       string  `json:"payer_id" binding:"required"`
	BeneficiaryID string  `json:"beneficiary_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Description   string  `json:"description"`
}

func (r InitiatePaymentRequest) ResolveDescription() string {
	if v := strings.TrimSpace(r.Description); v != "" {
		return v
	}
	return "Escrow payment"
}
