package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"accreditation/internal/duplicate"
	id "accreditation/pkg/domain"
)

// PostgresStore appends candidates to the duplicate_candidates table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed candidate store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts all rows in one transaction so a run is recorded whole or not at all.
func (s *PostgresStore) Append(ctx context.Context, candidates []*duplicate.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append candidates: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO duplicate_candidates (
			id, tenant_id, event_id, participant_id, matched_participant_id,
			score, match_fields, risk, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return fmt.Errorf("prepare append candidate: %w", err)
	}
	defer stmt.Close()

	for _, c := range candidates {
		fields, err := json.Marshal(c.MatchFields)
		if err != nil {
			return fmt.Errorf("encode match fields: %w", err)
		}
		_, err = stmt.ExecContext(ctx,
			c.ID.String(),
			c.TenantID.String(),
			c.EventID.String(),
			c.ParticipantID.String(),
			c.MatchedParticipantID.String(),
			c.Score,
			fields,
			c.Risk.String(),
			c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("append candidate: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append candidates: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByEvent(ctx context.Context, tenantID id.TenantID, eventID id.EventID) ([]*duplicate.Candidate, error) {
	query := `
		SELECT id, tenant_id, event_id, participant_id, matched_participant_id,
			score, match_fields, risk, created_at
		FROM duplicate_candidates
		WHERE tenant_id = $1 AND event_id = $2
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, tenantID.String(), eventID.String())
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	out := make([]*duplicate.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}

func scanCandidate(rows *sql.Rows) (*duplicate.Candidate, error) {
	var (
		rowID, tenantID, eventID, participantID, matchedID uuid.UUID
		fields                                             []byte
		risk                                               string
		c                                                  duplicate.Candidate
	)
	if err := rows.Scan(&rowID, &tenantID, &eventID, &participantID, &matchedID, &c.Score, &fields, &risk, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan candidate: %w", err)
	}
	if err := json.Unmarshal(fields, &c.MatchFields); err != nil {
		return nil, fmt.Errorf("decode match fields: %w", err)
	}
	parsed, err := duplicate.ParseRisk(risk)
	if err != nil {
		return nil, fmt.Errorf("decode risk: %w", err)
	}
	c.ID = id.CandidateID(rowID)
	c.TenantID = id.TenantID(tenantID)
	c.EventID = id.EventID(eventID)
	c.ParticipantID = id.ParticipantID(participantID)
	c.MatchedParticipantID = id.ParticipantID(matchedID)
	c.Risk = parsed
	return &c, nil
}
