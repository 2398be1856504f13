package service_test

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks BlacklistScreener,DuplicateDetector,AuditLogger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	blacklistmodels "accreditation/internal/blacklist/models"
	blacklistservice "accreditation/internal/blacklist/service"
	blackliststore "accreditation/internal/blacklist/store"
	"accreditation/internal/duplicate"
	candidatestore "accreditation/internal/duplicate/store"
	participant "accreditation/internal/participant/models"
	participantstore "accreditation/internal/participant/store"
	"accreditation/internal/screening/metrics"
	"accreditation/internal/screening/service"
	"accreditation/internal/screening/service/mocks"
	id "accreditation/pkg/domain"
	dErrors "accreditation/pkg/domain-errors"
	"accreditation/pkg/platform/audit"
	"accreditation/pkg/requestcontext"
	pkgtestutil "accreditation/pkg/testutil"
)

type PreRegistrationSuite struct {
	suite.Suite
	ctx          context.Context
	ctrl         *gomock.Controller
	participants *participantstore.InMemoryStore
	entries      *blackliststore.InMemoryStore
	candidates   *candidatestore.InMemoryStore
	audit        *mocks.MockAuditLogger
	metrics      *metrics.Metrics
	service      *service.Service
	tenant       id.TenantID
	event        id.EventID
}

func TestPreRegistrationSuite(t *testing.T) {
	suite.Run(t, new(PreRegistrationSuite))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *PreRegistrationSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), pkgtestutil.FixedNow)
	s.ctrl = gomock.NewController(s.T())
	s.participants = participantstore.NewInMemory()
	s.entries = blackliststore.NewInMemory()
	s.candidates = candidatestore.NewInMemory()
	s.audit = mocks.NewMockAuditLogger(s.ctrl)
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.tenant = pkgtestutil.TestIDs.TenantID1
	s.event = pkgtestutil.TestIDs.EventID1

	scorer, err := duplicate.NewScorer(duplicate.DefaultScorerConfig())
	s.Require().NoError(err)
	classifier, err := duplicate.NewClassifier(duplicate.DefaultThresholds())
	s.Require().NoError(err)

	s.service = s.newService(
		blacklistservice.New(s.entries, blacklistservice.WithLogger(discardLogger())),
		duplicate.New(s.participants, s.candidates, scorer, classifier, duplicate.WithLogger(discardLogger())),
	)
}

func (s *PreRegistrationSuite) newService(bl service.BlacklistScreener, dup service.DuplicateDetector) *service.Service {
	return service.New(bl, dup,
		service.WithAudit(s.audit),
		service.WithMetrics(s.metrics),
		service.WithLogger(discardLogger()),
	)
}

func (s *PreRegistrationSuite) existing(b *pkgtestutil.SnapshotBuilder) participant.Snapshot {
	rec := b.Record(s.tenant, s.event, pkgtestutil.FixedNow.Add(-24 * time.Hour))
	s.Require().NoError(s.participants.Save(s.ctx, &rec))
	return rec.Snapshot
}

func (s *PreRegistrationSuite) expectAudit(decision, risk string) {
	s.audit.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) {
		s.Equal(string(audit.EventParticipantScreened), e.Action)
		s.Equal(decision, e.Decision)
		s.Equal(risk, e.Risk)
		s.Equal(s.tenant, e.TenantID)
		s.Equal(s.event, e.EventID)
		s.Equal(pkgtestutil.FixedNow, e.Timestamp)
	})
}

func (s *PreRegistrationSuite) TestBlacklistMatchBlocksWithoutDetection() {
	s.Require().NoError(s.entries.Save(s.ctx, pkgtestutil.NewEntryBuilder(s.tenant).
		WithName("John Smith").
		Build()))
	// An identical participant exists, but detection must not run for a blocked registrant.
	s.existing(pkgtestutil.NewSnapshotBuilder().WithName("Jon", "Smith"))
	s.expectAudit("blocked", "BLOCK")

	registrant := pkgtestutil.NewSnapshotBuilder().WithName("Jon", "Smith").Build()
	result, err := s.service.PreRegistrationChecks(s.ctx, s.tenant, s.event, registrant)

	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Equal(duplicate.RiskBlock, result.Risk)
	s.Require().Len(result.BlacklistMatches, 1)
	s.Equal(blacklistmodels.EntryTypeIndividual, result.BlacklistMatches[0].EntryType)
	s.Empty(result.Candidates)

	queued, err := s.candidates.ListByEvent(s.ctx, s.tenant, s.event)
	s.Require().NoError(err)
	s.Empty(queued, "blocked registrant must not enter the review queue")
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.BlacklistBlocks))
}

func (s *PreRegistrationSuite) TestIdenticalDuplicateBlocks() {
	other := s.existing(pkgtestutil.NewSnapshotBuilder().
		WithName("Maria", "Gonzalez").
		WithEmail("maria@example.com").
		WithPhone("+1 (555) 123-4567"))
	s.expectAudit("blocked", "BLOCK")

	registrant := pkgtestutil.NewSnapshotBuilder().
		WithName("Maria", "Gonzalez").
		WithEmail("maria@example.com").
		WithPhone("+1 (555) 123-4567").
		Build()
	result, err := s.service.PreRegistrationChecks(s.ctx, s.tenant, s.event, registrant)

	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Equal(duplicate.RiskBlock, result.Risk)
	s.Empty(result.BlacklistMatches)
	s.Require().Len(result.Candidates, 1)
	s.Equal(other.ID, result.Candidates[0].ParticipantID)
	s.InDelta(1.0, result.Candidates[0].Score, 0.001)

	queued, err := s.candidates.ListByEvent(s.ctx, s.tenant, s.event)
	s.Require().NoError(err)
	s.Require().Len(queued, 1)
	s.Equal(registrant.ID, queued[0].ParticipantID)
	s.Equal(other.ID, queued[0].MatchedParticipantID)
	s.InDelta(1.0, queued[0].Score, 0.001)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Decisions.WithLabelValues("blocked", "BLOCK")))
}

func (s *PreRegistrationSuite) TestSimilarSurnameNeverBlocks() {
	s.existing(pkgtestutil.NewSnapshotBuilder().WithName("Alice", "Robinson").WithEmail("alice@example.com"))
	s.audit.EXPECT().Log(gomock.Any(), gomock.Any())

	registrant := pkgtestutil.NewSnapshotBuilder().WithName("Gregory", "Rabinsen").WithEmail("greg@example.org").Build()
	result, err := s.service.PreRegistrationChecks(s.ctx, s.tenant, s.event, registrant)

	s.Require().NoError(err)
	s.True(result.Allowed)
	s.NotEqual(duplicate.RiskBlock, result.Risk)
	s.Equal(1, result.Evaluated)
}

func (s *PreRegistrationSuite) TestExpiredEntryDoesNotBlock() {
	s.Require().NoError(s.entries.Save(s.ctx, pkgtestutil.NewEntryBuilder(s.tenant).
		WithName("John Smith").
		ExpiringAt(pkgtestutil.FixedNow.Add(-24 * time.Hour)).
		Build()))
	s.expectAudit("allowed", "PASS")

	registrant := pkgtestutil.NewSnapshotBuilder().WithName("John", "Smith").Build()
	result, err := s.service.PreRegistrationChecks(s.ctx, s.tenant, s.event, registrant)

	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(duplicate.RiskPass, result.Risk)
	s.Empty(result.BlacklistMatches)
}

func (s *PreRegistrationSuite) TestIdempotentDecision() {
	s.Require().NoError(s.entries.Save(s.ctx, pkgtestutil.NewEntryBuilder(s.tenant).WithEmail("banned@example.com").Build()))
	s.existing(pkgtestutil.NewSnapshotBuilder().WithName("Ann", "Lee").WithEmail("ann@example.com"))
	s.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Times(4)

	for _, registrant := range []participant.Snapshot{
		pkgtestutil.NewSnapshotBuilder().WithName("Ann", "Lee").WithEmail("ann@example.com").Build(),
		pkgtestutil.NewSnapshotBuilder().WithName("Bob", "Stone").WithEmail("Banned@Example.com").Build(),
	} {
		first, err := s.service.PreRegistrationChecks(s.ctx, s.tenant, s.event, registrant)
		s.Require().NoError(err)
		second, err := s.service.PreRegistrationChecks(s.ctx, s.tenant, s.event, registrant)
		s.Require().NoError(err)

		s.Equal(first.Allowed, second.Allowed)
		s.Equal(first.Risk, second.Risk)
		s.Equal(first.BlacklistMatches, second.BlacklistMatches)
	}

	// Review rows are append-only, so the duplicate pair is stored twice.
	queued, err := s.candidates.ListByEvent(s.ctx, s.tenant, s.event)
	s.Require().NoError(err)
	s.Len(queued, 2)

	review, err := s.service.ListDuplicateCandidates(s.ctx, s.tenant, s.event)
	s.Require().NoError(err)
	s.Len(review, 1)
}

func (s *PreRegistrationSuite) TestInvalidInput() {
	snap := pkgtestutil.NewSnapshotBuilder().WithName("Jon", "Smith").Build()

	s.Run("nil tenant", func() {
		_, err := s.service.PreRegistrationChecks(s.ctx, id.TenantID{}, s.event, snap)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("nil event", func() {
		_, err := s.service.PreRegistrationChecks(s.ctx, s.tenant, id.EventID{}, snap)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("nil participant", func() {
		bad := snap
		bad.ID = id.ParticipantID{}
		_, err := s.service.PreRegistrationChecks(s.ctx, s.tenant, s.event, bad)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *PreRegistrationSuite) TestFailClosed() {
	snap := pkgtestutil.NewSnapshotBuilder().WithName("Jon", "Smith").Build()

	s.Run("blacklist failure fails the call and skips detection", func() {
		bl := mocks.NewMockBlacklistScreener(s.ctrl)
		dup := mocks.NewMockDuplicateDetector(s.ctrl)
		bl.EXPECT().Screen(gomock.Any(), s.tenant, snap).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "failed to load blacklist"))

		result, err := s.newService(bl, dup).PreRegistrationChecks(s.ctx, s.tenant, s.event, snap)
		s.Nil(result)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("detection failure fails the call", func() {
		bl := mocks.NewMockBlacklistScreener(s.ctrl)
		dup := mocks.NewMockDuplicateDetector(s.ctrl)
		bl.EXPECT().Screen(gomock.Any(), s.tenant, snap).Return([]blacklistmodels.Match{}, nil)
		dup.EXPECT().Detect(gomock.Any(), s.tenant, s.event, snap).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "candidate search failed"))

		result, err := s.newService(bl, dup).PreRegistrationChecks(s.ctx, s.tenant, s.event, snap)
		s.Nil(result)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("cancelled context fails instead of allowing", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()

		result, err := s.service.PreRegistrationChecks(ctx, s.tenant, s.event, snap)
		s.Nil(result)
		s.Require().Error(err)
		s.True(errors.Is(err, context.Canceled) || dErrors.HasCode(err, dErrors.CodeTimeout))
	})

	s.Equal(float64(3), testutil.ToFloat64(s.metrics.Decisions.WithLabelValues("error", "")))
}

func (s *PreRegistrationSuite) TestNewPanicsWithoutStages() {
	s.Panics(func() { service.New(nil, mocks.NewMockDuplicateDetector(s.ctrl)) })
	s.Panics(func() { service.New(mocks.NewMockBlacklistScreener(s.ctrl), nil) })
}
