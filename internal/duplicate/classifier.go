package duplicate

import (
	dErrors "accreditation/pkg/domain-errors"
)

// Thresholds are the two cut points of the risk step function.
// They are independent of the persistence floor used by the Service.
type Thresholds struct {
	Warn  float64
	Block float64
}

// DefaultThresholds returns the standard warn/block cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{Warn: 0.7, Block: 0.9}
}

// Classifier maps a pairing score to a Risk.
type Classifier struct {
	t Thresholds
}

// NewClassifier rejects thresholds outside [0,1] or a warn threshold above block.
func NewClassifier(t Thresholds) (*Classifier, error) {
	if !unit(t.Warn) || !unit(t.Block) {
		return nil, dErrors.New(dErrors.CodeValidation, "risk thresholds must be within [0,1]")
	}
	if t.Warn > t.Block {
		return nil, dErrors.New(dErrors.CodeValidation, "warn threshold must not exceed block threshold")
	}
	return &Classifier{t: t}, nil
}

// Classify is monotonic: a higher score never yields a lower risk.
func (c *Classifier) Classify(score float64) Risk {
	switch {
	case score >= c.t.Block:
		return RiskBlock
	case score >= c.t.Warn:
		return RiskWarn
	default:
		return RiskPass
	}
}

// Thresholds returns the configured cut points.
func (c *Classifier) Thresholds() Thresholds {
	return c.t
}
