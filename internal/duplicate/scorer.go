package duplicate

import (
	"strings"

	participant "accreditation/internal/participant/models"
	"accreditation/internal/similarity"
	dErrors "accreditation/pkg/domain-errors"
)

// ExtraComparison selects how a declared extras field is compared.
type ExtraComparison string

const (
	// CompareExact compares document-like values on their uppercase alphanumerics.
	CompareExact ExtraComparison = "exact"
	// CompareName runs the name ladder: exact, phonetic, fuzzy.
	CompareName ExtraComparison = "name"
)

// ExtraRule declares an extras key that takes part in scoring.
type ExtraRule struct {
	Key        participant.ExtraKey
	Comparison ExtraComparison
	Weight     float64
}

// FieldWeights holds the weights of the fixed identity fields.
type FieldWeights struct {
	FirstName float64
	LastName  float64
	Email     float64
	Phone     float64
}

// ScorerConfig tunes the pairwise scorer.
type ScorerConfig struct {
	PhoneticScore float64 // score awarded for equal phonetic codes
	FuzzyFloor    float64 // fuzzy similarity below this contributes nothing
	Weights       FieldWeights
	Extras        []ExtraRule
}

const DefaultExtraWeight = 0.5

// DefaultScorerConfig returns the standard matching policy.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		PhoneticScore: 0.8,
		FuzzyFloor:    0.7,
		Weights:       FieldWeights{FirstName: 1.0, LastName: 1.0, Email: 1.0, Phone: 0.8},
		Extras: []ExtraRule{
			{Key: participant.ExtraPassportNumber, Comparison: CompareExact, Weight: DefaultExtraWeight},
			{Key: participant.ExtraDocumentNumber, Comparison: CompareExact, Weight: DefaultExtraWeight},
		},
	}
}

// Validate rejects values outside [0,1] and unknown extras comparisons.
func (c ScorerConfig) Validate() error {
	if !unit(c.PhoneticScore) || !unit(c.FuzzyFloor) {
		return dErrors.New(dErrors.CodeValidation, "phonetic score and fuzzy floor must be within [0,1]")
	}
	for _, w := range []float64{c.Weights.FirstName, c.Weights.LastName, c.Weights.Email, c.Weights.Phone} {
		if w < 0 {
			return dErrors.New(dErrors.CodeValidation, "field weights must not be negative")
		}
	}
	seen := make(map[participant.ExtraKey]struct{}, len(c.Extras))
	for _, r := range c.Extras {
		if strings.TrimSpace(string(r.Key)) == "" {
			return dErrors.New(dErrors.CodeValidation, "extras rule requires a key")
		}
		if _, dup := seen[r.Key]; dup {
			return dErrors.New(dErrors.CodeValidation, "extras key declared twice: "+string(r.Key))
		}
		seen[r.Key] = struct{}{}
		if r.Comparison != CompareExact && r.Comparison != CompareName {
			return dErrors.New(dErrors.CodeValidation, "unknown extras comparison: "+string(r.Comparison))
		}
		if r.Weight < 0 {
			return dErrors.New(dErrors.CodeValidation, "extras weight must not be negative")
		}
	}
	return nil
}

// Scorer combines the similarity primitives across the fields of two snapshots.
// It is pure and safe for concurrent use.
type Scorer struct {
	cfg ScorerConfig
}

// NewScorer validates cfg and returns a Scorer.
func NewScorer(cfg ScorerConfig) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	extras := make([]ExtraRule, len(cfg.Extras))
	copy(extras, cfg.Extras)
	cfg.Extras = extras
	return &Scorer{cfg: cfg}, nil
}

// fieldResult is one field's outcome. present is false when either side lacks a value.
type fieldResult struct {
	present    bool
	similarity float64
	method     MatchMethod
}

// Score returns the weighted similarity of a and b in [0,1] and the fields that contributed.
// Fields absent on either side are left out of both numerator and denominator.
// Only declared extras are compared.
func (s *Scorer) Score(a, b participant.Snapshot) (float64, []MatchField) {
	var (
		weighted float64
		total    float64
		fields   []MatchField
	)
	add := func(field Field, weight float64, r fieldResult) {
		if !r.present || weight <= 0 {
			return
		}
		total += weight
		if r.similarity <= 0 {
			return
		}
		weighted += weight * r.similarity
		fields = append(fields, MatchField{Field: field, Method: r.method, Similarity: r.similarity, Weight: weight})
	}

	w := s.cfg.Weights
	add(FieldFirstName, w.FirstName, s.compareName(a.FirstName, b.FirstName))
	add(FieldLastName, w.LastName, s.compareName(a.LastName, b.LastName))
	add(FieldEmail, w.Email, compareEmail(a.Email, b.Email))
	add(FieldPhone, w.Phone, comparePhone(a.Phone, b.Phone))

	for _, rule := range s.cfg.Extras {
		va, _ := a.Extra(rule.Key)
		vb, _ := b.Extra(rule.Key)
		var r fieldResult
		switch rule.Comparison {
		case CompareName:
			r = s.compareName(va, vb)
		default:
			r = compareDocument(va, vb)
		}
		add(Field(rule.Key), rule.Weight, r)
	}

	if total == 0 {
		return 0, nil
	}
	return min(max(weighted/total, 0), 1), fields
}

// compareName runs the exact, phonetic, fuzzy ladder on normalized names.
// When phonetic and fuzzy both qualify the higher similarity wins.
func (s *Scorer) compareName(a, b string) fieldResult {
	na, nb := similarity.NormalizeName(a), similarity.NormalizeName(b)
	if na == "" || nb == "" {
		return fieldResult{}
	}
	if na == nb {
		return fieldResult{present: true, similarity: 1, method: MethodExact}
	}

	r := fieldResult{present: true}
	if similarity.PhoneticTokensEqual(na, nb) {
		r.similarity, r.method = s.cfg.PhoneticScore, MethodPhonetic
	}
	if fuzzy := similarity.Similarity(na, nb); fuzzy >= s.cfg.FuzzyFloor && fuzzy > r.similarity {
		r.similarity, r.method = fuzzy, MethodFuzzy
	}
	return r
}

// compareEmail is exact and case-insensitive. Near-miss addresses never count.
func compareEmail(a, b string) fieldResult {
	ea, eb := strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if ea == "" || eb == "" {
		return fieldResult{}
	}
	if ea == eb {
		return fieldResult{present: true, similarity: 1, method: MethodExact}
	}
	return fieldResult{present: true}
}

func comparePhone(a, b string) fieldResult {
	pa, pb := similarity.NormalizePhone(a), similarity.NormalizePhone(b)
	if pa == "" || pb == "" {
		return fieldResult{}
	}
	if pa == pb {
		return fieldResult{present: true, similarity: 1, method: MethodExact}
	}
	return fieldResult{present: true}
}

func compareDocument(a, b string) fieldResult {
	da, db := similarity.NormalizeDocument(a), similarity.NormalizeDocument(b)
	if da == "" || db == "" {
		return fieldResult{}
	}
	if da == db {
		return fieldResult{present: true, similarity: 1, method: MethodExact}
	}
	return fieldResult{present: true}
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
