// Package service composes blacklist screening and duplicate detection into
// the single synchronous decision used by the registration path.
//
// The sequence is fixed: blacklist first, duplicates only when the blacklist
// is clear. Screening is fail-closed. Any storage failure or cancellation
// fails the whole call and no partial "allowed" result is ever returned.
package service

import (
	"context"
	"log/slog"
	"time"

	blacklist "accreditation/internal/blacklist/models"
	"accreditation/internal/duplicate"
	participant "accreditation/internal/participant/models"
	"accreditation/internal/screening/metrics"
	"accreditation/internal/screening/models"
	"accreditation/internal/screening/tracer"
	id "accreditation/pkg/domain"
	dErrors "accreditation/pkg/domain-errors"
	"accreditation/pkg/platform/audit"
	"accreditation/pkg/requestcontext"
)

// BlacklistScreener is satisfied by the blacklist service.
type BlacklistScreener interface {
	Screen(ctx context.Context, tenantID id.TenantID, snap participant.Snapshot) ([]blacklist.Match, error)
}

// DuplicateDetector is satisfied by the duplicate service.
type DuplicateDetector interface {
	Detect(ctx context.Context, tenantID id.TenantID, eventID id.EventID, snap participant.Snapshot) (*duplicate.Detection, error)
	ListForReview(ctx context.Context, tenantID id.TenantID, eventID id.EventID) ([]*duplicate.Candidate, error)
}

// AuditLogger is satisfied by audit.Logger. Logging never fails the call.
type AuditLogger interface {
	Log(ctx context.Context, event audit.Event)
}

type Service struct {
	blacklist  BlacklistScreener
	duplicates DuplicateDetector
	audit      AuditLogger
	tracer     tracer.Tracer
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

type Option func(*Service)

func WithAudit(a AuditLogger) Option {
	return func(s *Service) {
		s.audit = a
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New panics when either stage is nil.
func New(bl BlacklistScreener, dup DuplicateDetector, opts ...Option) *Service {
	if bl == nil {
		panic("screening.New: blacklist screener is required")
	}
	if dup == nil {
		panic("screening.New: duplicate detector is required")
	}
	s := &Service{
		blacklist:  bl,
		duplicates: dup,
		tracer:     tracer.NewNoop(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PreRegistrationChecks screens a registrant before the registration commits.
// A blacklist match returns BLOCK with no candidates and skips duplicate
// detection. Otherwise candidates at or above the persistence floor are
// appended to the review queue and the aggregate risk is the maximum among them.
func (s *Service) PreRegistrationChecks(ctx context.Context, tenantID id.TenantID, eventID id.EventID, snap participant.Snapshot) (*models.Result, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant id is required")
	}
	if eventID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "event id is required")
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "screening.preregistration",
		tracer.String("tenant_id", tenantID.String()),
		tracer.String("event_id", eventID.String()),
		tracer.String("participant_id", snap.ID.String()),
	)
	result, err := s.check(ctx, tenantID, eventID, snap)
	if err == nil {
		span.SetAttributes(
			tracer.Bool("allowed", result.Allowed),
			tracer.String("risk", result.Risk.String()),
		)
	}
	span.End(err)
	s.metrics.ObserveLatency(time.Since(start))

	if err != nil {
		s.metrics.IncrementDecision("error", "")
		s.logger.ErrorContext(ctx, "pre-registration screening failed",
			"error", err,
			"tenant_id", tenantID.String(),
			"event_id", eventID.String(),
			"participant_id", snap.ID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, err
	}

	s.metrics.IncrementDecision(result.Decision(), result.Risk.String())
	s.logAudit(ctx, tenantID, eventID, snap.ID, result)
	return result, nil
}

func (s *Service) check(ctx context.Context, tenantID id.TenantID, eventID id.EventID, snap participant.Snapshot) (*models.Result, error) {
	matches, err := s.screenBlacklist(ctx, tenantID, snap)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		s.metrics.IncrementBlacklistBlock()
		return models.Blocked(matches), nil
	}

	detection, err := s.detectDuplicates(ctx, tenantID, eventID, snap)
	if err != nil {
		return nil, err
	}
	return models.FromDetection(detection), nil
}

func (s *Service) screenBlacklist(ctx context.Context, tenantID id.TenantID, snap participant.Snapshot) (matches []blacklist.Match, err error) {
	ctx, span := s.tracer.Start(ctx, "screening.blacklist")
	defer func() { span.End(err) }()

	matches, err = s.blacklist.Screen(ctx, tenantID, snap)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.Int("matches", len(matches)))
	return matches, nil
}

func (s *Service) detectDuplicates(ctx context.Context, tenantID id.TenantID, eventID id.EventID, snap participant.Snapshot) (detection *duplicate.Detection, err error) {
	ctx, span := s.tracer.Start(ctx, "screening.duplicates")
	defer func() { span.End(err) }()

	detection, err = s.duplicates.Detect(ctx, tenantID, eventID, snap)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		tracer.Int("evaluated", detection.Evaluated),
		tracer.Int("candidates", len(detection.Candidates)),
		tracer.Bool("truncated", detection.Truncated),
	)
	return detection, nil
}

// ListDuplicateCandidates returns the event's review queue, one row per pair.
func (s *Service) ListDuplicateCandidates(ctx context.Context, tenantID id.TenantID, eventID id.EventID) ([]*duplicate.Candidate, error) {
	return s.duplicates.ListForReview(ctx, tenantID, eventID)
}

func (s *Service) logAudit(ctx context.Context, tenantID id.TenantID, eventID id.EventID, participantID id.ParticipantID, result *models.Result) {
	if s.audit == nil {
		return
	}
	reason := ""
	if len(result.BlacklistMatches) > 0 {
		reason = "blacklist: " + result.BlacklistMatches[0].Reason
	} else if len(result.Candidates) > 0 {
		reason = "duplicate of " + result.Candidates[0].ParticipantID.String()
	}
	s.audit.Log(ctx, audit.Event{
		Timestamp:     requestcontext.Now(ctx),
		TenantID:      tenantID,
		EventID:       eventID,
		ParticipantID: participantID,
		Action:        string(audit.EventParticipantScreened),
		Decision:      result.Decision(),
		Risk:          result.Risk.String(),
		Reason:        reason,
	})
}
