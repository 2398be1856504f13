package audit

import (
	"context"
	"time"

	id "accreditation/pkg/domain"
)

// Event is emitted from screening to record a decision. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp     time.Time
	TenantID      id.TenantID
	EventID       id.EventID
	ParticipantID id.ParticipantID
	Action        string
	Decision      string // "allowed" or "blocked"
	Risk          string // PASS, WARN or BLOCK
	Reason        string
	RequestID     string // Correlation ID from HTTP request context
}

type AuditEvent string

const (
	EventParticipantScreened AuditEvent = "participant_screened"
	EventRescreenMatched     AuditEvent = "participant_rescreen_matched"
)

// Store persists audit events. Append-only; the same decision may be recorded
// more than once.
type Store interface {
	Append(ctx context.Context, event Event) error
}
