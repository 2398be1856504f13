// Package rescreen periodically re-runs blacklist screening over the stored
// participants of configured tenants, so entries added after a registration
// still surface that participant.
package rescreen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"accreditation/internal/blacklist/models"
	participant "accreditation/internal/participant/models"
	id "accreditation/pkg/domain"
	"accreditation/pkg/platform/audit"
	"accreditation/pkg/requestcontext"
)

// ParticipantLister pages a tenant's live participants in ID order.
type ParticipantLister interface {
	ListByTenant(ctx context.Context, tenantID id.TenantID, after id.ParticipantID, limit int) ([]participant.Snapshot, error)
}

// Screener is satisfied by the blacklist service.
type Screener interface {
	Screen(ctx context.Context, tenantID id.TenantID, snap participant.Snapshot) ([]models.Match, error)
}

// AuditLogger records hits. Satisfied by audit.Logger.
type AuditLogger interface {
	Log(ctx context.Context, event audit.Event)
}

const (
	defaultInterval = time.Hour
	defaultPageSize = 200
)

// Result summarizes one sweep.
type Result struct {
	Tenants  int
	Screened int
	Hits     int
}

type Worker struct {
	participants ParticipantLister
	screener     Screener
	tenants      []id.TenantID
	interval     time.Duration
	pageSize     int
	clock        func() time.Time
	audit        AuditLogger
	metrics      *Metrics
	logger       *slog.Logger
}

type Option func(*Worker)

// WithInterval overrides the sweep interval when greater than zero.
func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithPageSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.pageSize = n
		}
	}
}

// WithClock sets the time source used as "now" for each sweep.
func WithClock(clock func() time.Time) Option {
	return func(w *Worker) {
		if clock != nil {
			w.clock = clock
		}
	}
}

func WithAudit(a AuditLogger) Option {
	return func(w *Worker) {
		w.audit = a
	}
}

func WithMetrics(m *Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New builds a worker. It errors when a port is missing or no tenant is configured.
func New(participants ParticipantLister, screener Screener, tenants []id.TenantID, opts ...Option) (*Worker, error) {
	if participants == nil || screener == nil {
		return nil, fmt.Errorf("participants and screener are required")
	}
	if len(tenants) == 0 {
		return nil, fmt.Errorf("at least one tenant is required")
	}
	w := &Worker{
		participants: participants,
		screener:     screener,
		tenants:      append([]id.TenantID(nil), tenants...),
		interval:     defaultInterval,
		pageSize:     defaultPageSize,
		clock:        time.Now,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Start sweeps every interval until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			res, err := w.RunOnce(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.logger.ErrorContext(ctx, "blacklist rescreen failed", "error", err)
				continue
			}
			w.logger.InfoContext(ctx, "blacklist rescreen completed",
				"tenants", res.Tenants,
				"screened", res.Screened,
				"hits", res.Hits,
			)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce sweeps every configured tenant once. A failing tenant does not stop
// the others; the errors are joined. Cancellation stops the sweep immediately.
func (w *Worker) RunOnce(ctx context.Context) (Result, error) {
	start := time.Now()
	ctx = requestcontext.WithTime(ctx, w.clock())

	var res Result
	var errs []error
	for _, tenantID := range w.tenants {
		if err := ctx.Err(); err != nil {
			w.metrics.ObserveSweep(time.Since(start), err)
			return res, err
		}
		screened, hits, err := w.sweepTenant(ctx, tenantID)
		res.Screened += screened
		res.Hits += hits
		if err != nil {
			errs = append(errs, fmt.Errorf("tenant %s: %w", tenantID, err))
			continue
		}
		res.Tenants++
	}

	err := errors.Join(errs...)
	w.metrics.ObserveSweep(time.Since(start), err)
	return res, err
}

func (w *Worker) sweepTenant(ctx context.Context, tenantID id.TenantID) (screened, hits int, err error) {
	var after id.ParticipantID
	for {
		page, err := w.participants.ListByTenant(ctx, tenantID, after, w.pageSize)
		if err != nil {
			return screened, hits, fmt.Errorf("list participants: %w", err)
		}
		for _, snap := range page {
			matches, err := w.screener.Screen(ctx, tenantID, snap)
			if err != nil {
				return screened, hits, fmt.Errorf("screen participant %s: %w", snap.ID, err)
			}
			screened++
			w.metrics.IncScreened()
			if len(matches) > 0 {
				hits++
				w.reportHit(ctx, tenantID, snap.ID, matches)
			}
		}
		if len(page) < w.pageSize {
			return screened, hits, nil
		}
		after = page[len(page)-1].ID
	}
}

func (w *Worker) reportHit(ctx context.Context, tenantID id.TenantID, participantID id.ParticipantID, matches []models.Match) {
	w.metrics.IncHit()
	top := matches[0]
	w.logger.WarnContext(ctx, "rescreen blacklist hit",
		"tenant_id", tenantID.String(),
		"participant_id", participantID.String(),
		"entry_id", top.EntryID.String(),
		"confidence", top.Confidence,
	)
	if w.audit == nil {
		return
	}
	w.audit.Log(ctx, audit.Event{
		Timestamp:     requestcontext.Now(ctx),
		TenantID:      tenantID,
		ParticipantID: participantID,
		Action:        string(audit.EventRescreenMatched),
		Decision:      "blocked",
		Risk:          "BLOCK",
		Reason:        top.Reason,
	})
}
