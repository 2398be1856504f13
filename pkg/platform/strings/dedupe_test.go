package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	got := DedupeAndTrim([]string{"  Jon Smith ", "J. Smith", "Jon Smith", "", "   "})
	assert.Equal(t, []string{"Jon Smith", "J. Smith"}, got)
	assert.Empty(t, DedupeAndTrim(nil))
}

func TestTrimSpacePtr(t *testing.T) {
	assert.Nil(t, TrimSpacePtr(nil))

	blank := "   "
	assert.Nil(t, TrimSpacePtr(&blank))

	padded := " P1234567 "
	got := TrimSpacePtr(&padded)
	if assert.NotNil(t, got) {
		assert.Equal(t, "P1234567", *got)
	}
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "first_name", ToSnakeCase("FirstName"))
	assert.Equal(t, "participant_id", ToSnakeCase("ParticipantID"))
	assert.Equal(t, "email", ToSnakeCase("Email"))
}
