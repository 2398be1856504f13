package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"accreditation/internal/blacklist/models"
	"accreditation/internal/sentinel"
	id "accreditation/pkg/domain"
)

// InMemoryStore keeps denylist entries in memory for tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[id.TenantID]map[id.BlacklistEntryID]*models.Entry
}

// NewInMemory constructs an empty in-memory blacklist store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{entries: make(map[id.TenantID]map[id.BlacklistEntryID]*models.Entry)}
}

// Save inserts or replaces an entry.
func (s *InMemoryStore) Save(_ context.Context, entry *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID, ok := s.entries[entry.TenantID]
	if !ok {
		byID = make(map[id.BlacklistEntryID]*models.Entry)
		s.entries[entry.TenantID] = byID
	}
	byID[entry.ID] = copyEntry(entry)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, tenantID id.TenantID, entryID id.BlacklistEntryID) (*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[tenantID][entryID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyEntry(entry), nil
}

// ListActive returns the tenant's entries active at now, oldest first.
func (s *InMemoryStore) ListActive(ctx context.Context, tenantID id.TenantID, now time.Time) ([]*models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Entry, 0, len(s.entries[tenantID]))
	for _, e := range s.entries[tenantID] {
		if e.IsActive(now) {
			out = append(out, copyEntry(e))
		}
	}
	slices.SortFunc(out, func(a, b *models.Entry) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func copyEntry(e *models.Entry) *models.Entry {
	c := *e
	c.NameVariations = slices.Clone(e.NameVariations)
	return &c
}
