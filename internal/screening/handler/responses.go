package handler

import (
	"time"

	blacklist "accreditation/internal/blacklist/models"
	"accreditation/internal/duplicate"
	"accreditation/internal/screening/models"
)

// HTTP Response DTOs. Matched blacklist values are not echoed back.

type ScreeningResponse struct {
	Allowed             bool                     `json:"allowed"`
	Risk                string                   `json:"risk"`
	BlacklistMatches    []BlacklistMatchResponse `json:"blacklist_matches"`
	DuplicateCandidates []CandidateResponse      `json:"duplicate_candidates"`
	Evaluated           int                      `json:"evaluated"`
	Truncated           bool                     `json:"truncated"`
}

type BlacklistMatchResponse struct {
	EntryID       string               `json:"entry_id"`
	EntryType     string               `json:"entry_type"`
	Reason        string               `json:"reason"`
	Confidence    float64              `json:"confidence"`
	Method        string               `json:"method"`
	MatchedFields []MatchedFieldResult `json:"matched_fields"`
}

type MatchedFieldResult struct {
	Field  string `json:"field"`
	Method string `json:"method"`
}

type CandidateResponse struct {
	ParticipantID string                 `json:"participant_id"`
	Score         float64                `json:"score"`
	Risk          string                 `json:"risk"`
	MatchFields   []duplicate.MatchField `json:"match_fields"`
}

type ReviewCandidateResponse struct {
	ID                   string                 `json:"id"`
	ParticipantID        string                 `json:"participant_id"`
	MatchedParticipantID string                 `json:"matched_participant_id"`
	Score                float64                `json:"score"`
	Risk                 string                 `json:"risk"`
	MatchFields          []duplicate.MatchField `json:"match_fields"`
	CreatedAt            time.Time              `json:"created_at"`
}

type ReviewQueueResponse struct {
	Candidates []ReviewCandidateResponse `json:"candidates"`
}

func toScreeningResponse(r *models.Result) *ScreeningResponse {
	resp := &ScreeningResponse{
		Allowed:             r.Allowed,
		Risk:                r.Risk.String(),
		BlacklistMatches:    make([]BlacklistMatchResponse, 0, len(r.BlacklistMatches)),
		DuplicateCandidates: make([]CandidateResponse, 0, len(r.Candidates)),
		Evaluated:           r.Evaluated,
		Truncated:           r.Truncated,
	}
	for _, m := range r.BlacklistMatches {
		resp.BlacklistMatches = append(resp.BlacklistMatches, toBlacklistMatchResponse(m))
	}
	for _, c := range r.Candidates {
		resp.DuplicateCandidates = append(resp.DuplicateCandidates, CandidateResponse{
			ParticipantID: c.ParticipantID.String(),
			Score:         c.Score,
			Risk:          c.Risk.String(),
			MatchFields:   nonNilFields(c.MatchFields),
		})
	}
	return resp
}

func toBlacklistMatchResponse(m blacklist.Match) BlacklistMatchResponse {
	fields := make([]MatchedFieldResult, 0, len(m.MatchedFields))
	for _, f := range m.MatchedFields {
		fields = append(fields, MatchedFieldResult{Field: f.Field, Method: string(f.Method)})
	}
	return BlacklistMatchResponse{
		EntryID:       m.EntryID.String(),
		EntryType:     string(m.EntryType),
		Reason:        m.Reason,
		Confidence:    m.Confidence,
		Method:        string(m.Method),
		MatchedFields: fields,
	}
}

func toReviewQueueResponse(rows []*duplicate.Candidate) *ReviewQueueResponse {
	resp := &ReviewQueueResponse{Candidates: make([]ReviewCandidateResponse, 0, len(rows))}
	for _, c := range rows {
		resp.Candidates = append(resp.Candidates, ReviewCandidateResponse{
			ID:                   c.ID.String(),
			ParticipantID:        c.ParticipantID.String(),
			MatchedParticipantID: c.MatchedParticipantID.String(),
			Score:                c.Score,
			Risk:                 c.Risk.String(),
			MatchFields:          nonNilFields(c.MatchFields),
			CreatedAt:            c.CreatedAt,
		})
	}
	return resp
}

func nonNilFields(f []duplicate.MatchField) []duplicate.MatchField {
	if f == nil {
		return []duplicate.MatchField{}
	}
	return f
}
