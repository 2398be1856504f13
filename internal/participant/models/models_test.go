package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	id "accreditation/pkg/domain"
	dErrors "accreditation/pkg/domain-errors"
)

type SnapshotSuite struct {
	suite.Suite
}

func TestSnapshotSuite(t *testing.T) {
	suite.Run(t, new(SnapshotSuite))
}

func (s *SnapshotSuite) TestIsEmpty() {
	s.True(Snapshot{}.IsEmpty())
	s.True(Snapshot{FirstName: "  ", Extras: map[ExtraKey]string{ExtraOrganization: " "}}.IsEmpty())
	s.False(Snapshot{Email: "a@example.com"}.IsEmpty())
	s.False(Snapshot{Extras: map[ExtraKey]string{ExtraPassportNumber: "P1"}}.IsEmpty())
}

func (s *SnapshotSuite) TestFullName() {
	s.Equal("Jon Smith", Snapshot{FirstName: " Jon ", LastName: "Smith"}.FullName())
	s.Equal("Smith", Snapshot{LastName: "Smith"}.FullName())
	s.Equal("", Snapshot{}.FullName())
}

func (s *SnapshotSuite) TestCloneIsolatesExtras() {
	orig := Snapshot{Extras: map[ExtraKey]string{ExtraOrganization: "Acme"}}
	clone := orig.Clone()
	clone.Extras[ExtraOrganization] = "Globex"
	s.Equal("Acme", orig.Extras[ExtraOrganization])
}

func (s *SnapshotSuite) TestValidate() {
	s.Run("nil id is invalid input", func() {
		err := Snapshot{FirstName: "Jon"}.Validate()
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("too many extras", func() {
		extras := make(map[ExtraKey]string)
		for i := 0; i <= MaxExtras; i++ {
			extras[ExtraKey(strings.Repeat("k", i+1))] = "v"
		}
		err := Snapshot{ID: id.NewParticipantID(), Extras: extras}.Validate()
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("blank extras key", func() {
		err := Snapshot{ID: id.NewParticipantID(), Extras: map[ExtraKey]string{" ": "v"}}.Validate()
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("valid snapshot", func() {
		s.NoError(Snapshot{ID: id.NewParticipantID(), LastName: "Smith"}.Validate())
	})
}
