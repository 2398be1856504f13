package service

import (
	"strings"

	"accreditation/internal/blacklist/models"
	participant "accreditation/internal/participant/models"
	"accreditation/internal/similarity"
	dErrors "accreditation/pkg/domain-errors"
)

// MatcherConfig tunes per-entry matching.
type MatcherConfig struct {
	PhoneticScore   float64                // confidence of a token-wise phonetic name hit
	NameThreshold   float64                // minimum fuzzy similarity for a name hit
	DocumentKeys    []participant.ExtraKey // extras compared against PassportNumber
	OrganizationKey participant.ExtraKey   // extra compared against ORGANIZATION names
}

// DefaultMatcherConfig returns the standard denylist matching policy.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		PhoneticScore:   0.8,
		NameThreshold:   0.85,
		DocumentKeys:    []participant.ExtraKey{participant.ExtraPassportNumber, participant.ExtraDocumentNumber},
		OrganizationKey: participant.ExtraOrganization,
	}
}

func (c MatcherConfig) Validate() error {
	if c.PhoneticScore < 0 || c.PhoneticScore > 1 || c.NameThreshold < 0 || c.NameThreshold > 1 {
		return dErrors.New(dErrors.CodeValidation, "blacklist scores must be within [0,1]")
	}
	return nil
}

// matcher compares one participant against one entry. Any strong signal is a
// hit on its own; signals are never summed.
type matcher struct {
	cfg MatcherConfig
}

// hit is a single qualifying signal.
type hit struct {
	field      models.MatchedField
	confidence float64
}

func (m matcher) match(entry *models.Entry, snap participant.Snapshot) (models.Match, bool) {
	var hits []hit

	if entry.PassportNumber != nil {
		hits = append(hits, m.documentHits(*entry.PassportNumber, snap)...)
	}
	if entry.Type != models.EntryTypeDocument {
		if h, ok := emailHit(entry.Email, snap.Email); ok {
			hits = append(hits, h)
		}
	}
	switch entry.Type {
	case models.EntryTypeIndividual:
		if h, ok := m.individualHit(entry, snap); ok {
			hits = append(hits, h)
		}
	case models.EntryTypeOrganization:
		if h, ok := m.organizationHit(entry, snap); ok {
			hits = append(hits, h)
		}
	}

	if len(hits) == 0 {
		return models.Match{}, false
	}
	result := models.Match{
		EntryID:   entry.ID,
		EntryType: entry.Type,
		Reason:    entry.Reason,
	}
	for _, h := range hits {
		result.MatchedFields = append(result.MatchedFields, h.field)
		if h.confidence > result.Confidence {
			result.Confidence = h.confidence
			result.Method = h.field.Method
		}
	}
	return result, true
}

func (m matcher) documentHits(number string, snap participant.Snapshot) []hit {
	want := similarity.NormalizeDocument(number)
	if want == "" {
		return nil
	}
	var hits []hit
	for _, key := range m.cfg.DocumentKeys {
		got, ok := snap.Extra(key)
		if ok && similarity.NormalizeDocument(got) == want {
			hits = append(hits, hit{
				field:      models.MatchedField{Field: string(key), Method: models.MethodExact, Value: number},
				confidence: 1,
			})
		}
	}
	return hits
}

func emailHit(entryEmail *string, email string) (hit, bool) {
	if entryEmail == nil {
		return hit{}, false
	}
	want := strings.ToLower(strings.TrimSpace(*entryEmail))
	got := strings.ToLower(strings.TrimSpace(email))
	if want == "" || got != want {
		return hit{}, false
	}
	return hit{
		field:      models.MatchedField{Field: "email", Method: models.MethodExact, Value: *entryEmail},
		confidence: 1,
	}, true
}

// individualHit compares the participant's full name against the entry name and
// every variation, keeping the strongest.
func (m matcher) individualHit(entry *models.Entry, snap participant.Snapshot) (hit, bool) {
	full := similarity.NormalizeName(snap.FullName())
	if full == "" {
		return hit{}, false
	}
	var best hit
	for _, name := range entry.Names() {
		conf, method := m.nameScore(full, similarity.NormalizeName(name), true)
		if conf > best.confidence {
			best = hit{
				field:      models.MatchedField{Field: "fullName", Method: method, Value: name},
				confidence: conf,
			}
		}
	}
	return best, best.confidence > 0
}

func (m matcher) organizationHit(entry *models.Entry, snap participant.Snapshot) (hit, bool) {
	raw, ok := snap.Extra(m.cfg.OrganizationKey)
	if !ok {
		return hit{}, false
	}
	org := similarity.NormalizeOrganization(raw)
	if org == "" {
		return hit{}, false
	}
	var best hit
	for _, name := range entry.Names() {
		conf, method := m.nameScore(org, similarity.NormalizeOrganization(name), false)
		if conf > best.confidence {
			best = hit{
				field:      models.MatchedField{Field: string(m.cfg.OrganizationKey), Method: method, Value: name},
				confidence: conf,
			}
		}
	}
	return best, best.confidence > 0
}

// nameScore runs the exact, phonetic, fuzzy ladder on two normalized names.
// A result of 0 means no qualifying hit.
func (m matcher) nameScore(a, b string, phonetic bool) (float64, models.Method) {
	if a == "" || b == "" {
		return 0, ""
	}
	if a == b {
		return 1, models.MethodExact
	}
	var (
		conf   float64
		method models.Method
	)
	if phonetic && similarity.PhoneticTokensEqual(a, b) {
		conf, method = m.cfg.PhoneticScore, models.MethodPhonetic
	}
	if sim := similarity.Similarity(a, b); sim >= m.cfg.NameThreshold && sim > conf {
		conf, method = sim, models.MethodFuzzy
	}
	return conf, method
}
