// Package models defines the participant identity view used by screening.
package models

import (
	"strings"
	"time"

	id "accreditation/pkg/domain"
	dErrors "accreditation/pkg/domain-errors"
)

// ExtraKey identifies an additional identity-bearing field ("extra").
// Only keys declared in the matching policy take part in scoring.
type ExtraKey string

const (
	ExtraPassportNumber ExtraKey = "passportNumber"
	ExtraDocumentNumber ExtraKey = "documentNumber"
	ExtraOrganization   ExtraKey = "organization"
	ExtraNationality    ExtraKey = "nationality"
	ExtraDateOfBirth    ExtraKey = "dateOfBirth"
)

const (
	// MaxExtras bounds the extras map accepted at the boundary.
	MaxExtras = 16
	// MaxExtraKeyLength bounds a single extras key.
	MaxExtraKeyLength = 64
)

// Snapshot is a read-only view of a participant's identity fields at screening time.
// It is built fresh per call and never mutated by the engine.
type Snapshot struct {
	ID        id.ParticipantID
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Extras    map[ExtraKey]string
}

// IsEmpty reports whether no identity field carries a value.
func (s Snapshot) IsEmpty() bool {
	if strings.TrimSpace(s.FirstName) != "" || strings.TrimSpace(s.LastName) != "" ||
		strings.TrimSpace(s.Email) != "" || strings.TrimSpace(s.Phone) != "" {
		return false
	}
	for _, v := range s.Extras {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Extra returns the trimmed value for key and whether it is non-blank.
func (s Snapshot) Extra(key ExtraKey) (string, bool) {
	v := strings.TrimSpace(s.Extras[key])
	return v, v != ""
}

// FullName joins first and last name with a single space.
func (s Snapshot) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(s.FirstName) + " " + strings.TrimSpace(s.LastName))
}

// Clone returns a copy whose extras map can be modified independently.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Extras != nil {
		out.Extras = make(map[ExtraKey]string, len(s.Extras))
		for k, v := range s.Extras {
			out.Extras[k] = v
		}
	}
	return out
}

// Validate checks the shape of a snapshot arriving from outside the engine.
// Semantic emptiness is the caller's concern and is not checked here.
func (s Snapshot) Validate() error {
	if s.ID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "participant id is required")
	}
	if len(s.Extras) > MaxExtras {
		return dErrors.New(dErrors.CodeValidation, "too many extras fields")
	}
	for k := range s.Extras {
		if strings.TrimSpace(string(k)) == "" || len(k) > MaxExtraKeyLength {
			return dErrors.New(dErrors.CodeValidation, "invalid extras key")
		}
	}
	return nil
}

// Record is a stored participant registration scoped to a tenant and event.
type Record struct {
	TenantID  id.TenantID
	EventID   id.EventID
	Snapshot  Snapshot
	CreatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted reports whether the record was soft-deleted.
func (r *Record) IsDeleted() bool {
	return r.DeletedAt != nil
}
