package service

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"accreditation/internal/blacklist/metrics"
	"accreditation/internal/blacklist/models"
	participant "accreditation/internal/participant/models"
	id "accreditation/pkg/domain"
	dErrors "accreditation/pkg/domain-errors"
	"accreditation/pkg/requestcontext"
)

// Store loads denylist entries. ListActive should return entries of the tenant
// that are active at now; the service filters again regardless.
type Store interface {
	ListActive(ctx context.Context, tenantID id.TenantID, now time.Time) ([]*models.Entry, error)
}

// Service screens participants against their tenant's denylist.
type Service struct {
	store   Store
	matcher matcher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithMatcherConfig overrides matching thresholds. Validate the config first;
// New does not re-check it.
func WithMatcherConfig(cfg MatcherConfig) Option {
	return func(s *Service) {
		s.matcher = matcher{cfg: cfg}
	}
}

// New creates a blacklist screening service.
// Panics if the store is nil - fail fast at startup.
func New(store Store, opts ...Option) *Service {
	if store == nil {
		panic("blacklist.New: store is required")
	}
	s := &Service{
		store:   store,
		matcher: matcher{cfg: DefaultMatcherConfig()},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Screen returns every active entry of the tenant the participant matches,
// strongest first. An empty result means no concern. A store failure is
// returned as an error and never as an empty result.
func (s *Service) Screen(ctx context.Context, tenantID id.TenantID, snap participant.Snapshot) ([]models.Match, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant id is required")
	}
	start := time.Now()
	defer func() { s.metrics.ObserveScreenLatency(time.Since(start)) }()

	now := requestcontext.Now(ctx)
	entries, err := s.store.ListActive(ctx, tenantID, now)
	if err != nil {
		return nil, dErrors.WrapStorage(err, "failed to load blacklist")
	}
	s.metrics.ObserveEntriesLoaded(len(entries))

	matches := make([]models.Match, 0)
	expired := 0
	for _, entry := range entries {
		if !entry.IsActive(now) {
			expired++
			continue
		}
		if m, ok := s.matcher.match(entry, snap); ok {
			matches = append(matches, m)
		}
	}
	s.metrics.AddExpiredSkipped(expired)

	slices.SortStableFunc(matches, func(a, b models.Match) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})

	if len(matches) == 0 {
		s.metrics.IncrementOutcome("clear")
		return matches, nil
	}
	s.metrics.IncrementOutcome("hit")
	s.logger.InfoContext(ctx, "blacklist match",
		"tenant_id", tenantID.String(),
		"participant_id", snap.ID.String(),
		"entry_id", matches[0].EntryID.String(),
		"matches", len(matches),
		"confidence", matches[0].Confidence,
		"request_id", requestcontext.RequestID(ctx),
	)
	return matches, nil
}
