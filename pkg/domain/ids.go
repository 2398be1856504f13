// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "accreditation/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing EventID where TenantID is expected.
type (
	TenantID         uuid.UUID
	EventID          uuid.UUID
	ParticipantID    uuid.UUID
	BlacklistEntryID uuid.UUID
	CandidateID      uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseTenantID(s string) (TenantID, error) {
	id, err := parseUUID(s, "tenant ID")
	return TenantID(id), err
}

func ParseEventID(s string) (EventID, error) {
	id, err := parseUUID(s, "event ID")
	return EventID(id), err
}

func ParseParticipantID(s string) (ParticipantID, error) {
	id, err := parseUUID(s, "participant ID")
	return ParticipantID(id), err
}

func ParseBlacklistEntryID(s string) (BlacklistEntryID, error) {
	id, err := parseUUID(s, "blacklist entry ID")
	return BlacklistEntryID(id), err
}

// String methods - for logging and debugging.

func (id TenantID) String() string         { return uuid.UUID(id).String() }
func (id EventID) String() string          { return uuid.UUID(id).String() }
func (id ParticipantID) String() string    { return uuid.UUID(id).String() }
func (id BlacklistEntryID) String() string { return uuid.UUID(id).String() }
func (id CandidateID) String() string      { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id TenantID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id EventID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }
func (id ParticipantID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id BlacklistEntryID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id CandidateID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }

// NewCandidateID generates a fresh identifier for a persisted duplicate candidate.
func NewCandidateID() CandidateID {
	return CandidateID(uuid.New())
}

// NewParticipantID generates a participant identifier; registration assigns it
// before screening so candidate rows can reference the registrant.
func NewParticipantID() ParticipantID {
	return ParticipantID(uuid.New())
}

// NewBlacklistEntryID generates an identifier for a new denylist entry.
func NewBlacklistEntryID() BlacklistEntryID {
	return BlacklistEntryID(uuid.New())
}

// parseUUID is the shared validation logic.
// Note: Nil UUIDs are allowed here. Use IsNil() at the service layer for
// business validation.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
