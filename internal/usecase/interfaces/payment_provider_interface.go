package interfaces

import "context"

// IPaymentProvider abstracts the external payment provider (e.g. Mercado Pago).
//
// The core only consumes the capability surface below; request signing and
// transport details live in the infrastructure implementation so the use cases
// can be tested against a fake.

type IPaymentProvider interface {
	// VerifySignature checks the provider signature over the exact webhook body.
	VerifySignature(payload []byte, signature string, timestamp string) error

	// InitiatePayment opens a payment attempt with the provider and returns the
	// provider-assigned reference number used to correlate later notifications.
	InitiatePayment(ctx context.Context, payerID string, beneficiaryID string, amount float64, description string) (referenceNo string, err error)

	// CompletePayment confirms the provider-side state of a payment attempt.
	CompletePayment(ctx context.Context, referenceNo string) error

	// ReleaseEscrow asks the provider to release held funds for a completed
	// payment.
	ReleaseEscrow(ctx context.Context, referenceNo string, amount float64) error
}
