package duplicate

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	id "accreditation/pkg/domain"
	dErrors "accreditation/pkg/domain-errors"
)

// Field identifies a compared snapshot field. Declared extras use their key as the field name.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldEmail     Field = "email"
	FieldPhone     Field = "phone"
)

// MatchMethod records which comparison produced a field hit.
type MatchMethod string

const (
	MethodExact    MatchMethod = "exact"
	MethodPhonetic MatchMethod = "phonetic"
	MethodFuzzy    MatchMethod = "fuzzy"
)

// MatchField explains one field's contribution to a pairing score.
// It never drives control flow beyond the aggregate score.
type MatchField struct {
	Field      Field       `json:"field"`
	Method     MatchMethod `json:"method"`
	Similarity float64     `json:"similarity"`
	Weight     float64     `json:"weight"`
}

// Risk is the ordered three-tier classification of a score: PASS < WARN < BLOCK.
type Risk int

const (
	RiskPass Risk = iota
	RiskWarn
	RiskBlock
)

func (r Risk) String() string {
	switch r {
	case RiskPass:
		return "PASS"
	case RiskWarn:
		return "WARN"
	case RiskBlock:
		return "BLOCK"
	default:
		return fmt.Sprintf("Risk(%d)", int(r))
	}
}

// ParseRisk reads the string form produced by String.
func ParseRisk(s string) (Risk, error) {
	switch s {
	case "PASS":
		return RiskPass, nil
	case "WARN":
		return RiskWarn, nil
	case "BLOCK":
		return RiskBlock, nil
	default:
		return RiskPass, dErrors.New(dErrors.CodeInvalidInput, "unknown risk: "+s)
	}
}

// MarshalText encodes the risk by name so JSON and stored rows stay readable.
func (r Risk) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Risk) UnmarshalText(b []byte) error {
	parsed, err := ParseRisk(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MaxRisk returns the more severe of a and b. Aggregation always keeps the maximum.
func MaxRisk(a, b Risk) Risk {
	return max(a, b)
}

// ScoredCandidate is one in-scope participant scored against the registrant.
type ScoredCandidate struct {
	ParticipantID id.ParticipantID
	Score         float64
	MatchFields   []MatchField
	Risk          Risk
}

// Candidate is the persisted review record for a pairing that cleared the persistence floor.
// Rows are append-only; the same pair may appear more than once across retries.
type Candidate struct {
	ID                   id.CandidateID
	TenantID             id.TenantID
	EventID              id.EventID
	ParticipantID        id.ParticipantID
	MatchedParticipantID id.ParticipantID
	Score                float64
	MatchFields          []MatchField
	Risk                 Risk
	CreatedAt            time.Time
}

// PairKey identifies the unordered participant pair of a candidate.
func (c *Candidate) PairKey() string {
	a, b := c.ParticipantID.String(), c.MatchedParticipantID.String()
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// Detection is the synchronous outcome of duplicate detection for one registrant.
type Detection struct {
	Candidates []ScoredCandidate // at or above the persistence floor, highest score first
	Risk       Risk
	Evaluated  int
	Truncated  bool
}

// DedupeForReview collapses repeated rows for the same unordered pair, keeping
// the most recent. Output is ordered by score, highest first.
func DedupeForReview(rows []*Candidate) []*Candidate {
	latest := make(map[string]*Candidate, len(rows))
	for _, c := range rows {
		key := c.PairKey()
		if prev, ok := latest[key]; !ok || c.CreatedAt.After(prev.CreatedAt) {
			latest[key] = c
		}
	}

	out := make([]*Candidate, 0, len(latest))
	for _, c := range latest {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}
