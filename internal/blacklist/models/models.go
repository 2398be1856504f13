// Package models defines tenant denylist entries and screening matches.
//
// Entries are scoped to a tenant, never to an event. An entry whose expiry has
// passed is inert: it stays stored for history but must never produce a match.
package models

import (
	"strings"
	"time"

	id "accreditation/pkg/domain"
	dErrors "accreditation/pkg/domain-errors"
	pkgstrings "accreditation/pkg/platform/strings"
)

// EntryType classifies what a denylist entry describes.
type EntryType string

const (
	EntryTypeIndividual   EntryType = "INDIVIDUAL"
	EntryTypeOrganization EntryType = "ORGANIZATION"
	EntryTypeDocument     EntryType = "DOCUMENT"
)

// IsValid reports whether t is one of the known entry types.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeIndividual, EntryTypeOrganization, EntryTypeDocument:
		return true
	default:
		return false
	}
}

// ParseEntryType accepts the type name case-insensitively.
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown blacklist entry type: "+s)
	}
	return t, nil
}

// Entry is one denylist record.
type Entry struct {
	ID             id.BlacklistEntryID
	TenantID       id.TenantID
	Type           EntryType
	Name           *string
	NameVariations []string // aliases and transliterations
	PassportNumber *string
	Email          *string
	Reason         string
	Source         *string
	ExpiresAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive is false once ExpiresAt is at or before now.
func (e *Entry) IsActive(now time.Time) bool {
	return e.ExpiresAt == nil || e.ExpiresAt.After(now)
}

// Names returns the primary name followed by every variation, blanks removed.
func (e *Entry) Names() []string {
	names := make([]string, 0, len(e.NameVariations)+1)
	if e.Name != nil {
		names = append(names, *e.Name)
	}
	names = append(names, e.NameVariations...)
	return pkgstrings.DedupeAndTrim(names)
}

// Normalize trims optional fields and dedupes variations before storage.
func (e *Entry) Normalize() {
	e.Name = pkgstrings.TrimSpacePtr(e.Name)
	e.PassportNumber = pkgstrings.TrimSpacePtr(e.PassportNumber)
	e.Email = pkgstrings.TrimSpacePtr(e.Email)
	e.Source = pkgstrings.TrimSpacePtr(e.Source)
	e.NameVariations = pkgstrings.DedupeAndTrim(e.NameVariations)
	e.Reason = strings.TrimSpace(e.Reason)
}

// Validate checks an entry carries at least one signal its type can match on.
func (e *Entry) Validate() error {
	if e.TenantID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "tenant id is required")
	}
	if !e.Type.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown blacklist entry type")
	}
	if e.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	switch e.Type {
	case EntryTypeDocument:
		if e.PassportNumber == nil {
			return dErrors.New(dErrors.CodeValidation, "document entries require a document number")
		}
	default:
		if len(e.Names()) == 0 && e.Email == nil && e.PassportNumber == nil {
			return dErrors.New(dErrors.CodeValidation, "entry needs a name, email or document number")
		}
	}
	return nil
}

// Method records how a signal matched.
type Method string

const (
	MethodExact    Method = "exact"
	MethodPhonetic Method = "phonetic"
	MethodFuzzy    Method = "fuzzy"
)

// MatchedField names the participant field that hit and the entry value it hit.
type MatchedField struct {
	Field  string
	Method Method
	Value  string
}

// Match is one entry the participant matched. It is not persisted by the engine.
type Match struct {
	EntryID       id.BlacklistEntryID
	EntryType     EntryType
	Reason        string
	MatchedFields []MatchedField
	Confidence    float64
	Method        Method // method of the strongest signal
}
