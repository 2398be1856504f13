package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	blacklist "accreditation/internal/blacklist/service"
	"accreditation/internal/duplicate"
	participant "accreditation/internal/participant/models"
)

// Policy is the matching policy. Defaults apply to every key the YAML file omits.
type Policy struct {
	Duplicate DuplicatePolicy `yaml:"duplicate"`
	Blacklist BlacklistPolicy `yaml:"blacklist"`
}

type DuplicatePolicy struct {
	WarnThreshold    float64       `yaml:"warn_threshold"`
	BlockThreshold   float64       `yaml:"block_threshold"`
	PersistenceFloor float64       `yaml:"persistence_floor"`
	CandidateCap     int           `yaml:"candidate_cap"`
	ScoringWorkers   int           `yaml:"scoring_workers"`
	PhoneticScore    float64       `yaml:"phonetic_score"`
	FuzzyFloor       float64       `yaml:"fuzzy_floor"`
	Weights          WeightsPolicy `yaml:"weights"`
	Extras           []ExtraPolicy `yaml:"extras"`
}

type WeightsPolicy struct {
	FirstName float64 `yaml:"first_name"`
	LastName  float64 `yaml:"last_name"`
	Email     float64 `yaml:"email"`
	Phone     float64 `yaml:"phone"`
}

// ExtraPolicy declares one extras key. Undeclared extras are never scored.
type ExtraPolicy struct {
	Key        string  `yaml:"key"`
	Comparison string  `yaml:"comparison"` // "exact" or "name"
	Weight     float64 `yaml:"weight"`
}

type BlacklistPolicy struct {
	PhoneticScore   float64  `yaml:"phonetic_score"`
	NameThreshold   float64  `yaml:"name_threshold"`
	DocumentKeys    []string `yaml:"document_keys"`
	OrganizationKey string   `yaml:"organization_key"`
}

// DefaultPolicy mirrors the package defaults of the scorer, classifier and matcher.
func DefaultPolicy() Policy {
	sc := duplicate.DefaultScorerConfig()
	th := duplicate.DefaultThresholds()
	mc := blacklist.DefaultMatcherConfig()

	extras := make([]ExtraPolicy, 0, len(sc.Extras))
	for _, r := range sc.Extras {
		extras = append(extras, ExtraPolicy{Key: string(r.Key), Comparison: string(r.Comparison), Weight: r.Weight})
	}
	docKeys := make([]string, 0, len(mc.DocumentKeys))
	for _, k := range mc.DocumentKeys {
		docKeys = append(docKeys, string(k))
	}
	return Policy{
		Duplicate: DuplicatePolicy{
			WarnThreshold:    th.Warn,
			BlockThreshold:   th.Block,
			PersistenceFloor: duplicate.DefaultPersistenceFloor,
			CandidateCap:     duplicate.DefaultCandidateCap,
			ScoringWorkers:   duplicate.DefaultScoringWorkers,
			PhoneticScore:    sc.PhoneticScore,
			FuzzyFloor:       sc.FuzzyFloor,
			Weights: WeightsPolicy{
				FirstName: sc.Weights.FirstName,
				LastName:  sc.Weights.LastName,
				Email:     sc.Weights.Email,
				Phone:     sc.Weights.Phone,
			},
			Extras: extras,
		},
		Blacklist: BlacklistPolicy{
			PhoneticScore:   mc.PhoneticScore,
			NameThreshold:   mc.NameThreshold,
			DocumentKeys:    docKeys,
			OrganizationKey: string(mc.OrganizationKey),
		},
	}
}

// LoadPolicy returns DefaultPolicy when path is empty, otherwise the defaults
// overlaid with the file. Unknown keys are rejected.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy %s: %w", path, err)
	}
	return ParsePolicy(data)
}

// ParsePolicy overlays YAML onto DefaultPolicy and validates the result.
func ParsePolicy(data []byte) (Policy, error) {
	p := DefaultPolicy()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Policy{}, fmt.Errorf("parse policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate rejects policies the engine cannot run with.
func (p Policy) Validate() error {
	d := p.Duplicate
	if _, err := duplicate.NewClassifier(p.Thresholds()); err != nil {
		return fmt.Errorf("duplicate thresholds: %w", err)
	}
	if d.PersistenceFloor < 0 || d.PersistenceFloor > 1 {
		return fmt.Errorf("duplicate persistence_floor must be within [0,1]")
	}
	if d.CandidateCap <= 0 {
		return fmt.Errorf("duplicate candidate_cap must be positive")
	}
	if d.ScoringWorkers <= 0 {
		return fmt.Errorf("duplicate scoring_workers must be positive")
	}
	if err := p.ScorerConfig().Validate(); err != nil {
		return fmt.Errorf("duplicate scorer: %w", err)
	}
	if err := p.MatcherConfig().Validate(); err != nil {
		return fmt.Errorf("blacklist matcher: %w", err)
	}
	if p.Blacklist.OrganizationKey == "" {
		return fmt.Errorf("blacklist organization_key is required")
	}
	return nil
}

func (p Policy) Thresholds() duplicate.Thresholds {
	return duplicate.Thresholds{Warn: p.Duplicate.WarnThreshold, Block: p.Duplicate.BlockThreshold}
}

func (p Policy) ScorerConfig() duplicate.ScorerConfig {
	d := p.Duplicate
	extras := make([]duplicate.ExtraRule, 0, len(d.Extras))
	for _, e := range d.Extras {
		extras = append(extras, duplicate.ExtraRule{
			Key:        participant.ExtraKey(e.Key),
			Comparison: duplicate.ExtraComparison(e.Comparison),
			Weight:     e.Weight,
		})
	}
	return duplicate.ScorerConfig{
		PhoneticScore: d.PhoneticScore,
		FuzzyFloor:    d.FuzzyFloor,
		Weights: duplicate.FieldWeights{
			FirstName: d.Weights.FirstName,
			LastName:  d.Weights.LastName,
			Email:     d.Weights.Email,
			Phone:     d.Weights.Phone,
		},
		Extras: extras,
	}
}

func (p Policy) MatcherConfig() blacklist.MatcherConfig {
	keys := make([]participant.ExtraKey, 0, len(p.Blacklist.DocumentKeys))
	for _, k := range p.Blacklist.DocumentKeys {
		keys = append(keys, participant.ExtraKey(k))
	}
	return blacklist.MatcherConfig{
		PhoneticScore:   p.Blacklist.PhoneticScore,
		NameThreshold:   p.Blacklist.NameThreshold,
		DocumentKeys:    keys,
		OrganizationKey: participant.ExtraKey(p.Blacklist.OrganizationKey),
	}
}
