package store

import (
	"context"
	"slices"
	"sync"

	"accreditation/internal/duplicate"
	id "accreditation/pkg/domain"
)

type scopeKey struct {
	tenantID id.TenantID
	eventID  id.EventID
}

// InMemoryStore is an append-only candidate log for tests and local runs.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows map[scopeKey][]duplicate.Candidate
}

// NewInMemory constructs an empty in-memory candidate store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{rows: make(map[scopeKey][]duplicate.Candidate)}
}

func (s *InMemoryStore) Append(ctx context.Context, candidates []*duplicate.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range candidates {
		key := scopeKey{c.TenantID, c.EventID}
		row := *c
		row.MatchFields = slices.Clone(c.MatchFields)
		s.rows[key] = append(s.rows[key], row)
	}
	return nil
}

// ListByEvent returns rows in insertion order, repeats included.
func (s *InMemoryStore) ListByEvent(ctx context.Context, tenantID id.TenantID, eventID id.EventID) ([]*duplicate.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.rows[scopeKey{tenantID, eventID}]
	out := make([]*duplicate.Candidate, 0, len(rows))
	for i := range rows {
		row := rows[i]
		row.MatchFields = slices.Clone(rows[i].MatchFields)
		out = append(out, &row)
	}
	return out, nil
}
