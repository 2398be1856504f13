package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"accreditation/internal/participant/models"
	"accreditation/internal/sentinel"
	id "accreditation/pkg/domain"
)

// Error Contract:
// - Search and ListByTenant return an empty slice when nothing is in scope, never ErrNotFound.
// - Save returns sentinel.ErrAlreadyExists for a reused participant ID.
// - SoftDelete returns sentinel.ErrNotFound when the participant is not in the tenant.

// InMemoryStore keeps participant records in memory for tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.ParticipantID]*models.Record
}

// NewInMemory constructs an empty in-memory participant store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.ParticipantID]*models.Record)}
}

func (s *InMemoryStore) Save(_ context.Context, record *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.Snapshot.ID]; ok {
		return sentinel.ErrAlreadyExists
	}
	stored := *record
	stored.Snapshot = record.Snapshot.Clone()
	s.records[record.Snapshot.ID] = &stored
	return nil
}

func (s *InMemoryStore) SoftDelete(_ context.Context, tenantID id.TenantID, participantID id.ParticipantID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[participantID]
	if !ok || record.TenantID != tenantID {
		return sentinel.ErrNotFound
	}
	deletedAt := at
	record.DeletedAt = &deletedAt
	return nil
}

// Search returns live participants of the tenant+event ordered by ID, excluding excludeID, at most limit.
func (s *InMemoryStore) Search(ctx context.Context, tenantID id.TenantID, eventID id.EventID, excludeID id.ParticipantID, limit int) ([]models.Snapshot, error) {
	return s.collect(ctx, limit, id.ParticipantID{}, func(r *models.Record) bool {
		return r.TenantID == tenantID && r.EventID == eventID && r.Snapshot.ID != excludeID
	})
}

// ListByTenant pages live participants of a tenant across events, keyset on ID.
func (s *InMemoryStore) ListByTenant(ctx context.Context, tenantID id.TenantID, after id.ParticipantID, limit int) ([]models.Snapshot, error) {
	return s.collect(ctx, limit, after, func(r *models.Record) bool {
		return r.TenantID == tenantID
	})
}

func (s *InMemoryStore) collect(ctx context.Context, limit int, after id.ParticipantID, match func(*models.Record) bool) ([]models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []models.Snapshot{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Snapshot, 0)
	for _, r := range s.records {
		if r.IsDeleted() || !match(r) {
			continue
		}
		if !after.IsNil() && strings.Compare(r.Snapshot.ID.String(), after.String()) <= 0 {
			continue
		}
		matched = append(matched, r.Snapshot.Clone())
	}
	slices.SortFunc(matched, func(a, b models.Snapshot) int {
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
