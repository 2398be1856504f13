package rescreen_test

//go:generate mockgen -source=rescreen.go -destination=mocks/mocks.go -package=mocks ParticipantLister,Screener,AuditLogger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	blacklistservice "accreditation/internal/blacklist/service"
	blackliststore "accreditation/internal/blacklist/store"
	"accreditation/internal/blacklist/workers/rescreen"
	"accreditation/internal/blacklist/workers/rescreen/mocks"
	participant "accreditation/internal/participant/models"
	participantstore "accreditation/internal/participant/store"
	id "accreditation/pkg/domain"
	dErrors "accreditation/pkg/domain-errors"
	"accreditation/pkg/platform/audit"
	pkgtestutil "accreditation/pkg/testutil"
)

type RescreenSuite struct {
	suite.Suite
	ctx          context.Context
	ctrl         *gomock.Controller
	participants *participantstore.InMemoryStore
	entries      *blackliststore.InMemoryStore
	audit        *mocks.MockAuditLogger
	metrics      *rescreen.Metrics
	tenant       id.TenantID
}

func TestRescreenSuite(t *testing.T) {
	suite.Run(t, new(RescreenSuite))
}

func (s *RescreenSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.participants = participantstore.NewInMemory()
	s.entries = blackliststore.NewInMemory()
	s.audit = mocks.NewMockAuditLogger(s.ctrl)
	s.metrics = rescreen.NewMetricsWithRegisterer(prometheus.NewRegistry())
	s.tenant = pkgtestutil.TestIDs.TenantID1
}

func (s *RescreenSuite) register(tenantID id.TenantID, first, last string) participant.Snapshot {
	b := pkgtestutil.NewSnapshotBuilder().WithName(first, last)
	rec := b.Record(tenantID, pkgtestutil.TestIDs.EventID1, pkgtestutil.FixedNow.Add(-time.Hour))
	s.Require().NoError(s.participants.Save(s.ctx, &rec))
	return rec.Snapshot
}

func (s *RescreenSuite) worker(screener rescreen.Screener, opts ...rescreen.Option) *rescreen.Worker {
	opts = append([]rescreen.Option{
		rescreen.WithClock(func() time.Time { return pkgtestutil.FixedNow }),
		rescreen.WithAudit(s.audit),
		rescreen.WithMetrics(s.metrics),
	}, opts...)
	w, err := rescreen.New(s.participants, screener, []id.TenantID{s.tenant}, opts...)
	s.Require().NoError(err)
	return w
}

func (s *RescreenSuite) TestNewValidation() {
	s.Run("requires ports", func() {
		_, err := rescreen.New(nil, mocks.NewMockScreener(s.ctrl), []id.TenantID{s.tenant})
		s.Error(err)
	})

	s.Run("requires at least one tenant", func() {
		_, err := rescreen.New(s.participants, mocks.NewMockScreener(s.ctrl), nil)
		s.Error(err)
	})
}

func (s *RescreenSuite) TestRunOnceReportsNewBlacklistHits() {
	jon := s.register(s.tenant, "Jon", "Smith")
	s.register(s.tenant, "Alice", "Walker")
	s.Require().NoError(s.entries.Save(s.ctx, pkgtestutil.NewEntryBuilder(s.tenant).WithName("John Smith").Build()))

	s.audit.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) {
		s.Equal(string(audit.EventRescreenMatched), e.Action)
		s.Equal(jon.ID, e.ParticipantID)
		s.Equal(s.tenant, e.TenantID)
		s.Equal(pkgtestutil.FixedNow, e.Timestamp)
		s.Equal("BLOCK", e.Risk)
	})

	res, err := s.worker(blacklistservice.New(s.entries)).RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(rescreen.Result{Tenants: 1, Screened: 2, Hits: 1}, res)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Hits))
	s.Equal(float64(2), testutil.ToFloat64(s.metrics.Screened))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Sweeps.WithLabelValues("success")))
}

func (s *RescreenSuite) TestRunOnceUsesClockForExpiry() {
	s.register(s.tenant, "Jon", "Smith")
	s.Require().NoError(s.entries.Save(s.ctx, pkgtestutil.NewEntryBuilder(s.tenant).
		WithName("Jon Smith").
		ExpiringAt(pkgtestutil.FixedNow).
		Build()))

	res, err := s.worker(blacklistservice.New(s.entries)).RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, res.Hits)
}

func (s *RescreenSuite) TestRunOncePagesThroughAllParticipants() {
	for range 5 {
		s.register(s.tenant, "Someone", "Else")
	}
	s.register(pkgtestutil.TestIDs.TenantID2, "Other", "Tenant")

	res, err := s.worker(blacklistservice.New(s.entries), rescreen.WithPageSize(2)).RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(5, res.Screened)
	s.Equal(0, res.Hits)
}

func (s *RescreenSuite) TestRunOnceFailures() {
	s.register(s.tenant, "Jon", "Smith")

	s.Run("screen failure is returned and counted", func() {
		screener := mocks.NewMockScreener(s.ctrl)
		screener.EXPECT().Screen(gomock.Any(), s.tenant, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "failed to load blacklist"))

		res, err := s.worker(screener).RunOnce(s.ctx)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
		s.Equal(0, res.Tenants)
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.Sweeps.WithLabelValues("error")))
	})

	s.Run("list failure does not stop other tenants", func() {
		lister := mocks.NewMockParticipantLister(s.ctrl)
		screener := mocks.NewMockScreener(s.ctrl)
		other := pkgtestutil.TestIDs.TenantID2
		snap := pkgtestutil.NewSnapshotBuilder().WithName("Ann", "Lee").Build()

		lister.EXPECT().ListByTenant(gomock.Any(), s.tenant, gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))
		lister.EXPECT().ListByTenant(gomock.Any(), other, gomock.Any(), gomock.Any()).
			Return([]participant.Snapshot{snap}, nil)
		screener.EXPECT().Screen(gomock.Any(), other, snap).Return(nil, nil)

		w, err := rescreen.New(lister, screener, []id.TenantID{s.tenant, other})
		s.Require().NoError(err)

		res, err := w.RunOnce(s.ctx)
		s.Require().Error(err)
		s.Contains(err.Error(), "connection refused")
		s.Equal(1, res.Tenants)
		s.Equal(1, res.Screened)
	})

	s.Run("cancelled context stops the sweep", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()

		_, err := s.worker(mocks.NewMockScreener(s.ctrl)).RunOnce(ctx)
		s.ErrorIs(err, context.Canceled)
	})
}

func (s *RescreenSuite) TestStartStopsOnCancel() {
	ctx, cancel := context.WithCancel(s.ctx)
	w := s.worker(blacklistservice.New(s.entries), rescreen.WithInterval(time.Hour))

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		s.ErrorIs(err, context.Canceled)
	case <-time.After(2 * time.Second):
		s.Fail("worker did not stop")
	}
}
