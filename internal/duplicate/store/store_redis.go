package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"accreditation/internal/duplicate"
	id "accreditation/pkg/domain"
)

const redisCandidateKeyPrefix = "screening:candidates:"

// RedisStore keeps one append-only Redis Stream per tenant and event.
// XADD appends, XRANGE reads the whole stream back in insertion order.
type RedisStore struct {
	client *redis.Client
	maxLen int64
}

// NewRedis constructs a Redis Streams candidate store. maxLen > 0 trims each
// stream approximately to that length; zero keeps everything.
func NewRedis(client *redis.Client, maxLen int64) *RedisStore {
	return &RedisStore{client: client, maxLen: maxLen}
}

// candidateRecord is the stream payload; IDs are kept as strings for readability in redis-cli.
type candidateRecord struct {
	ID                   string                 `json:"id"`
	ParticipantID        string                 `json:"participant_id"`
	MatchedParticipantID string                 `json:"matched_participant_id"`
	Score                float64                `json:"score"`
	MatchFields          []duplicate.MatchField `json:"match_fields"`
	Risk                 duplicate.Risk         `json:"risk"`
	CreatedAt            time.Time              `json:"created_at"`
}

// Append pipelines one XADD per candidate.
func (s *RedisStore) Append(ctx context.Context, candidates []*duplicate.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()
	for _, c := range candidates {
		payload, err := json.Marshal(candidateRecord{
			ID:                   c.ID.String(),
			ParticipantID:        c.ParticipantID.String(),
			MatchedParticipantID: c.MatchedParticipantID.String(),
			Score:                c.Score,
			MatchFields:          c.MatchFields,
			Risk:                 c.Risk,
			CreatedAt:            c.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("encode candidate: %w", err)
		}
		args := &redis.XAddArgs{
			Stream: candidateKey(c.TenantID, c.EventID),
			Values: map[string]any{"candidate": payload},
		}
		if s.maxLen > 0 {
			args.MaxLen = s.maxLen
			args.Approx = true
		}
		pipe.XAdd(ctx, args)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append candidates: %w", err)
	}
	return nil
}

func (s *RedisStore) ListByEvent(ctx context.Context, tenantID id.TenantID, eventID id.EventID) ([]*duplicate.Candidate, error) {
	msgs, err := s.client.XRange(ctx, candidateKey(tenantID, eventID), "-", "+").Result()
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	out := make([]*duplicate.Candidate, 0, len(msgs))
	for _, msg := range msgs {
		raw, ok := msg.Values["candidate"].(string)
		if !ok {
			return nil, fmt.Errorf("candidate stream entry %s has no payload", msg.ID)
		}
		var rec candidateRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode candidate %s: %w", msg.ID, err)
		}
		c, err := rec.toCandidate(tenantID, eventID)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r candidateRecord) toCandidate(tenantID id.TenantID, eventID id.EventID) (*duplicate.Candidate, error) {
	rowID, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("decode candidate id: %w", err)
	}
	participantID, err := uuid.Parse(r.ParticipantID)
	if err != nil {
		return nil, fmt.Errorf("decode participant id: %w", err)
	}
	matchedID, err := uuid.Parse(r.MatchedParticipantID)
	if err != nil {
		return nil, fmt.Errorf("decode matched participant id: %w", err)
	}
	return &duplicate.Candidate{
		ID:                   id.CandidateID(rowID),
		TenantID:             tenantID,
		EventID:              eventID,
		ParticipantID:        id.ParticipantID(participantID),
		MatchedParticipantID: id.ParticipantID(matchedID),
		Score:                r.Score,
		MatchFields:          r.MatchFields,
		Risk:                 r.Risk,
		CreatedAt:            r.CreatedAt,
	}, nil
}

func candidateKey(tenantID id.TenantID, eventID id.EventID) string {
	return redisCandidateKeyPrefix + tenantID.String() + ":" + eventID.String()
}
