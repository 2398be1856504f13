package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	audit "accreditation/pkg/platform/audit"
)

// AuditStore implements audit.Store by writing events to the outbox, keyed by
// participant, for the worker to publish.
type AuditStore struct {
	store Store
}

func NewAuditStore(store Store) *AuditStore {
	return &AuditStore{store: store}
}

// EventPayload is the published JSON form of an audit.Event.
type EventPayload struct {
	Timestamp     time.Time `json:"timestamp"`
	TenantID      string    `json:"tenant_id"`
	EventID       string    `json:"event_id"`
	ParticipantID string    `json:"participant_id"`
	Action        string    `json:"action"`
	Decision      string    `json:"decision,omitempty"`
	Risk          string    `json:"risk,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	RequestID     string    `json:"request_id,omitempty"`
}

func (s *AuditStore) Append(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	payload, err := json.Marshal(EventPayload{
		Timestamp:     event.Timestamp,
		TenantID:      event.TenantID.String(),
		EventID:       event.EventID.String(),
		ParticipantID: event.ParticipantID.String(),
		Action:        event.Action,
		Decision:      event.Decision,
		Risk:          event.Risk,
		Reason:        event.Reason,
		RequestID:     event.RequestID,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	entry := NewEntry(event.TenantID.String(), event.ParticipantID.String(), event.Action, payload, event.Timestamp)
	return s.store.Append(ctx, entry)
}
