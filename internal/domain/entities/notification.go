package entities

import (
	"encoding/json"
	"time"
)

// Notification is one row of the idempotency ledger: the durable record of a
// provider webhook delivery keyed by reference_no.
//
// Storage model (DynamoDB):
//   - PK: reference_no
//   - GSI (pending-index): sparse index over unprocessed rows, PK pending_partition,
//     SK received_at; rows leave the index when processed_at is stamped.
//
// Invariants:
//   - at most one row per reference_no; a resend overwrites the row in place
//     and resets RetryCount to 0 while the row is unprocessed
//   - once ProcessedAt is set the row is immutable

type Notification struct {
	ReferenceNo string          `json:"reference_no"`
	RawPayload  json.RawMessage `json:"raw_payload,omitempty"`
	Succeeded   bool            `json:"succeeded"`

	ReceivedAt  time.Time  `json:"received_at"`
	LastRetryAt *time.Time `json:"last_retry_at,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
	EscalatedAt *time.Time `json:"escalated_at,omitempty"`

	RetryCount int    `json:"retry_count"`
	LastError  string `json:"last_error,omitempty"`
}

// Processed reports whether the notification has been durably applied.
func (n Notification) Processed() bool {
	return n.ProcessedAt != nil
}
