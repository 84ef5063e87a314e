package entities

import "time"

// EscrowRecordStatus represents the lifecycle of a held-funds record.

type EscrowRecordStatus string

const (
	EscrowRecordStatusHeld     EscrowRecordStatus = "held"
	EscrowRecordStatusReleased EscrowRecordStatus = "released"
	EscrowRecordStatusRejected EscrowRecordStatus = "rejected"
)

// EscrowRecord is the held-funds entity, one-to-one with a completed Payment.
//
// Storage model (DynamoDB):
//   - PK: payment_id
//
// Created only as a side effect of a successful payment completion; never
// created for a failed payment.

type EscrowRecord struct {
	PaymentID     string             `json:"payment_id"`
	Status        EscrowRecordStatus `json:"status"`
	HolderID      string             `json:"holder_id"`
	BeneficiaryID string             `json:"beneficiary_id"`

	// Amount breakdown: gross amount, provider fee, net owed to the beneficiary.
	Amount    float64 `json:"amount"`
	Fee       float64 `json:"fee"`
	NetAmount float64 `json:"net_amount"`

	HeldAt     time.Time  `json:"held_at"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
}
