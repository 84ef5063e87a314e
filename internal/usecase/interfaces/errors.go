package interfaces

import "errors"

// Sentinel errors shared by repository implementations. Use cases match them
// with errors.Is to classify conditional-write conflicts.
var (
	// ErrNotificationAlreadyProcessed: the ledger row has processed_at set and
	// is immutable.
	ErrNotificationAlreadyProcessed = errors.New("notification already processed")

	// ErrProcessingInFlight: another attempt holds the processing claim on the
	// ledger row.
	ErrProcessingInFlight = errors.New("notification processing already in flight")

	// ErrEscalationSuppressed: an escalation was already recorded inside the
	// current suppression window.
	ErrEscalationSuppressed = errors.New("escalation suppressed for current window")

	// ErrPaymentAlreadyExists: a payment row with the same id already exists.
	ErrPaymentAlreadyExists = errors.New("payment already exists")

	// ErrPaymentStateConflict: the payment left the expected status before the
	// conditional transition could apply (another writer won).
	ErrPaymentStateConflict = errors.New("payment state conflict")

	// ErrEscrowAlreadyExists: an escrow record for the payment already exists.
	ErrEscrowAlreadyExists = errors.New("escrow record already exists")

	// ErrEscrowStateConflict: the escrow record left the expected status before
	// the conditional transition could apply.
	ErrEscrowStateConflict = errors.New("escrow state conflict")
)
