package duplicate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "accreditation/pkg/domain"
)

func TestRiskOrderingAndMax(t *testing.T) {
	assert.Less(t, RiskPass, RiskWarn)
	assert.Less(t, RiskWarn, RiskBlock)
	assert.Equal(t, RiskBlock, MaxRisk(RiskWarn, RiskBlock))
	assert.Equal(t, RiskWarn, MaxRisk(RiskWarn, RiskPass))
}

func TestRiskText(t *testing.T) {
	for _, r := range []Risk{RiskPass, RiskWarn, RiskBlock} {
		parsed, err := ParseRisk(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	_, err := ParseRisk("MAYBE")
	assert.Error(t, err)

	b, err := json.Marshal(struct{ Risk Risk }{RiskWarn})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Risk":"WARN"}`, string(b))
}

func TestDedupeForReview(t *testing.T) {
	a, b, c := id.NewParticipantID(), id.NewParticipantID(), id.NewParticipantID()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []*Candidate{
		{ParticipantID: a, MatchedParticipantID: b, Score: 0.75, CreatedAt: t0},
		{ParticipantID: b, MatchedParticipantID: a, Score: 0.92, CreatedAt: t0.Add(time.Minute)},
		{ParticipantID: a, MatchedParticipantID: b, Score: 0.80, CreatedAt: t0.Add(-time.Minute)},
		{ParticipantID: a, MatchedParticipantID: c, Score: 0.71, CreatedAt: t0},
	}

	got := DedupeForReview(rows)
	require.Len(t, got, 2)
	assert.Equal(t, 0.92, got[0].Score, "most recent row of the a/b pair wins regardless of direction")
	assert.Equal(t, c, got[1].MatchedParticipantID)
	assert.Empty(t, DedupeForReview(nil))
}
