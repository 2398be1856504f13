// Package models defines the pre-registration screening result.
package models

import (
	blacklist "accreditation/internal/blacklist/models"
	"accreditation/internal/duplicate"
)

// Result is built fresh per call and never stored.
type Result struct {
	Allowed          bool
	Risk             duplicate.Risk
	BlacklistMatches []blacklist.Match
	Candidates       []duplicate.ScoredCandidate
	// Evaluated and Truncated describe the duplicate search. Both are zero
	// when a blacklist match short-circuits detection.
	Evaluated int
	Truncated bool
}

// Blocked builds the result for a blacklist hit: BLOCK with no candidates.
func Blocked(matches []blacklist.Match) *Result {
	return &Result{
		Allowed:          false,
		Risk:             duplicate.RiskBlock,
		BlacklistMatches: matches,
		Candidates:       []duplicate.ScoredCandidate{},
	}
}

// FromDetection builds the result when no blacklist entry matched.
func FromDetection(d *duplicate.Detection) *Result {
	candidates := d.Candidates
	if candidates == nil {
		candidates = []duplicate.ScoredCandidate{}
	}
	return &Result{
		Allowed:          d.Risk != duplicate.RiskBlock,
		Risk:             d.Risk,
		BlacklistMatches: []blacklist.Match{},
		Candidates:       candidates,
		Evaluated:        d.Evaluated,
		Truncated:        d.Truncated,
	}
}

// Decision is "allowed" or "blocked".
func (r *Result) Decision() string {
	if r.Allowed {
		return "allowed"
	}
	return "blocked"
}
