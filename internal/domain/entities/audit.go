package entities

import "time"

// AuditSeverity classifies audit events; critical events are the ones that
// page operators (escalations, exhausted retries).

type AuditSeverity string

const (
	AuditSeverityInfo     AuditSeverity = "info"
	AuditSeverityWarning  AuditSeverity = "warning"
	AuditSeverityCritical AuditSeverity = "critical"
)

// AuditEvent is the persisted audit trail entry.
//
// Storage model (DynamoDB):
//   - PK: id (uuid)

type AuditEvent struct {
	ID         string                 `json:"id"`
	EventType  string                 `json:"event_type"`
	Severity   AuditSeverity          `json:"severity"`
	ResourceID string                 `json:"resource_id"`
	Data       map[string]interface{} `json:"data,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}
