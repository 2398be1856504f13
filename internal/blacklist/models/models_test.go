package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "accreditation/pkg/domain"
	dErrors "accreditation/pkg/domain-errors"
)

type EntrySuite struct {
	suite.Suite
}

func TestEntrySuite(t *testing.T) {
	suite.Run(t, new(EntrySuite))
}

func ptr[T any](v T) *T { return &v }

func (s *EntrySuite) TestIsActive() {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	s.True((&Entry{}).IsActive(now), "no expiry never lapses")
	s.True((&Entry{ExpiresAt: ptr(now.Add(time.Second))}).IsActive(now))
	s.False((&Entry{ExpiresAt: ptr(now)}).IsActive(now), "expiry instant is already inert")
	s.False((&Entry{ExpiresAt: ptr(now.Add(-time.Hour))}).IsActive(now))
}

func (s *EntrySuite) TestNames() {
	e := &Entry{Name: ptr("John Smith"), NameVariations: []string{" Jon Smith ", "John Smith", ""}}
	s.Equal([]string{"John Smith", "Jon Smith"}, e.Names())
	s.Empty((&Entry{}).Names())
}

func (s *EntrySuite) TestNormalize() {
	e := &Entry{Name: ptr("  "), Email: ptr(" x@example.com "), Reason: " sanctioned ", NameVariations: []string{"a", "a "}}
	e.Normalize()
	s.Nil(e.Name)
	s.Equal("x@example.com", *e.Email)
	s.Equal("sanctioned", e.Reason)
	s.Equal([]string{"a"}, e.NameVariations)
}

func (s *EntrySuite) TestValidate() {
	tenantID := id.TenantID(uuid.New())

	s.Run("valid individual", func() {
		e := &Entry{TenantID: tenantID, Type: EntryTypeIndividual, Name: ptr("John Smith"), Reason: "sanctioned"}
		s.NoError(e.Validate())
	})

	s.Run("missing tenant", func() {
		e := &Entry{Type: EntryTypeIndividual, Name: ptr("John Smith"), Reason: "sanctioned"}
		s.True(dErrors.HasCode(e.Validate(), dErrors.CodeInvalidInput))
	})

	s.Run("unknown type", func() {
		e := &Entry{TenantID: tenantID, Type: "PERSON", Name: ptr("x"), Reason: "r"}
		s.True(dErrors.HasCode(e.Validate(), dErrors.CodeValidation))
	})

	s.Run("missing reason", func() {
		e := &Entry{TenantID: tenantID, Type: EntryTypeIndividual, Name: ptr("x")}
		s.True(dErrors.HasCode(e.Validate(), dErrors.CodeValidation))
	})

	s.Run("document without number", func() {
		e := &Entry{TenantID: tenantID, Type: EntryTypeDocument, Name: ptr("x"), Reason: "stolen"}
		s.True(dErrors.HasCode(e.Validate(), dErrors.CodeValidation))
	})

	s.Run("no signal at all", func() {
		e := &Entry{TenantID: tenantID, Type: EntryTypeOrganization, Reason: "fraud"}
		s.True(dErrors.HasCode(e.Validate(), dErrors.CodeValidation))
	})
}

func (s *EntrySuite) TestParseEntryType() {
	t, err := ParseEntryType(" organization ")
	s.Require().NoError(err)
	s.Equal(EntryTypeOrganization, t)

	_, err = ParseEntryType("vessel")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
