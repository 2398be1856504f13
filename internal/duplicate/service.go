package duplicate

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"accreditation/internal/duplicate/metrics"
	participant "accreditation/internal/participant/models"
	id "accreditation/pkg/domain"
	dErrors "accreditation/pkg/domain-errors"
	"accreditation/pkg/requestcontext"
)

const (
	DefaultCandidateCap     = 500
	DefaultPersistenceFloor = 0.7
	DefaultScoringWorkers   = 4
)

// CandidateSource retrieves participants eligible for comparison. Implementations
// must scope to tenant AND event, skip excludeID and soft-deleted rows, and return
// at most limit snapshots. An empty scope is an empty slice, not an error.
type CandidateSource interface {
	Search(ctx context.Context, tenantID id.TenantID, eventID id.EventID, excludeID id.ParticipantID, limit int) ([]participant.Snapshot, error)
}

// CandidateStore is the append-only review queue.
type CandidateStore interface {
	Append(ctx context.Context, candidates []*Candidate) error
	ListByEvent(ctx context.Context, tenantID id.TenantID, eventID id.EventID) ([]*Candidate, error)
}

// Service finds likely duplicates of a registrant within one event and records
// every pairing above the persistence floor for human review.
type Service struct {
	source     CandidateSource
	store      CandidateStore
	scorer     *Scorer
	classifier *Classifier
	metrics    *metrics.Metrics
	logger     *slog.Logger

	candidateCap     int
	persistenceFloor float64
	workers          int
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

// WithCandidateCap bounds how many in-scope participants one run scores.
func WithCandidateCap(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.candidateCap = n
		}
	}
}

// WithPersistenceFloor sets the minimum score a pairing needs to be recorded.
// It is deliberately separate from the classifier's warn threshold.
func WithPersistenceFloor(f float64) Option {
	return func(s *Service) {
		if unit(f) {
			s.persistenceFloor = f
		}
	}
}

// WithScoringWorkers bounds parallel scoring goroutines.
func WithScoringWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New creates a duplicate detection service.
// Panics if required dependencies are nil - fail fast at startup.
func New(source CandidateSource, store CandidateStore, scorer *Scorer, classifier *Classifier, opts ...Option) *Service {
	if source == nil {
		panic("duplicate.New: candidate source is required")
	}
	if store == nil {
		panic("duplicate.New: candidate store is required")
	}
	if scorer == nil || classifier == nil {
		panic("duplicate.New: scorer and classifier are required")
	}

	s := &Service{
		source:           source,
		store:            store,
		scorer:           scorer,
		classifier:       classifier,
		candidateCap:     DefaultCandidateCap,
		persistenceFloor: DefaultPersistenceFloor,
		workers:          DefaultScoringWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Detect scores the registrant against every in-scope participant, appends each
// pairing at or above the persistence floor to the review queue, and returns those
// pairings highest score first with the maximum risk among them.
//
// Any search, scoring or persistence failure fails the call.
func (s *Service) Detect(ctx context.Context, tenantID id.TenantID, eventID id.EventID, snap participant.Snapshot) (*Detection, error) {
	if tenantID.IsNil() || eventID.IsNil() || snap.ID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant, event and participant ids are required")
	}
	start := time.Now()
	defer func() { s.metrics.ObserveDetectLatency(time.Since(start)) }()

	// One extra row tells us whether the cap cut the scope short.
	found, err := s.source.Search(ctx, tenantID, eventID, snap.ID, s.candidateCap+1)
	if err != nil {
		return nil, dErrors.WrapStorage(err, "candidate search failed")
	}
	truncated := len(found) > s.candidateCap
	if truncated {
		found = found[:s.candidateCap]
		s.metrics.IncrementTruncated()
		s.logger.WarnContext(ctx, "candidate search truncated",
			"tenant_id", tenantID.String(),
			"event_id", eventID.String(),
			"participant_id", snap.ID.String(),
			"cap", s.candidateCap,
			"truncated", true,
		)
	}
	s.metrics.ObserveEvaluated(len(found))

	scored, err := s.scoreAll(ctx, snap, found)
	if err != nil {
		return nil, dErrors.WrapStorage(err, "candidate scoring interrupted")
	}

	detection := &Detection{Risk: RiskPass, Evaluated: len(found), Truncated: truncated}
	for _, sc := range scored {
		if sc.Score < s.persistenceFloor {
			continue
		}
		detection.Candidates = append(detection.Candidates, sc)
		detection.Risk = MaxRisk(detection.Risk, sc.Risk)
	}
	slices.SortStableFunc(detection.Candidates, func(a, b ScoredCandidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ParticipantID.String(), b.ParticipantID.String())
	})

	if err := s.persist(ctx, tenantID, eventID, snap.ID, detection.Candidates); err != nil {
		return nil, err
	}
	return detection, nil
}

// RunDetection performs Detect for its persistence side effect only.
func (s *Service) RunDetection(ctx context.Context, tenantID id.TenantID, eventID id.EventID, snap participant.Snapshot) error {
	_, err := s.Detect(ctx, tenantID, eventID, snap)
	return err
}

// ListForReview returns the event's review queue with repeated pairs collapsed.
func (s *Service) ListForReview(ctx context.Context, tenantID id.TenantID, eventID id.EventID) ([]*Candidate, error) {
	if tenantID.IsNil() || eventID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant and event ids are required")
	}
	rows, err := s.store.ListByEvent(ctx, tenantID, eventID)
	if err != nil {
		return nil, dErrors.WrapStorage(err, "failed to load duplicate candidates")
	}
	return DedupeForReview(rows), nil
}

// scoreAll scores each candidate on a bounded errgroup. Every goroutine writes
// only its own slot, so no locking is needed.
func (s *Service) scoreAll(ctx context.Context, snap participant.Snapshot, found []participant.Snapshot) ([]ScoredCandidate, error) {
	results := make([]ScoredCandidate, len(found))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range found {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			score, fields := s.scorer.Score(snap, found[i])
			results[i] = ScoredCandidate{
				ParticipantID: found[i].ID,
				Score:         score,
				MatchFields:   fields,
				Risk:          s.classifier.Classify(score),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup only reports goroutine errors; a cancel after the last one finished still fails closed.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) persist(ctx context.Context, tenantID id.TenantID, eventID id.EventID, registrant id.ParticipantID, scored []ScoredCandidate) error {
	if len(scored) == 0 {
		return nil
	}
	now := requestcontext.Now(ctx)
	rows := make([]*Candidate, 0, len(scored))
	for _, sc := range scored {
		rows = append(rows, &Candidate{
			ID:                   id.NewCandidateID(),
			TenantID:             tenantID,
			EventID:              eventID,
			ParticipantID:        registrant,
			MatchedParticipantID: sc.ParticipantID,
			Score:                sc.Score,
			MatchFields:          sc.MatchFields,
			Risk:                 sc.Risk,
			CreatedAt:            now,
		})
	}
	if err := s.store.Append(ctx, rows); err != nil {
		return dErrors.WrapStorage(err, "failed to record duplicate candidates")
	}
	for _, r := range rows {
		s.metrics.IncrementPersisted(r.Risk.String())
	}
	s.logger.InfoContext(ctx, "duplicate candidates recorded",
		"tenant_id", tenantID.String(),
		"event_id", eventID.String(),
		"participant_id", registrant.String(),
		"count", len(rows),
	)
	return nil
}
