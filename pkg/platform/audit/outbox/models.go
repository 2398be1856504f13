package outbox

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one screening audit record waiting in the outbox.
type Entry struct {
	ID            uuid.UUID
	TenantID      string
	ParticipantID string // message key, so a participant's decisions stay ordered
	Action        string
	Payload       []byte // JSON EventPayload
	CreatedAt     time.Time
	ProcessedAt   *time.Time // nil until published
}

func (e *Entry) IsPending() bool {
	return e.ProcessedAt == nil
}

// NewEntry builds a pending entry with a fresh ID.
func NewEntry(tenantID, participantID, action string, payload []byte, createdAt time.Time) *Entry {
	return &Entry{
		ID:            uuid.New(),
		TenantID:      tenantID,
		ParticipantID: participantID,
		Action:        action,
		Payload:       payload,
		CreatedAt:     createdAt,
	}
}
