package worker

//go:generate mockgen -source=worker.go -destination=mocks/mocks.go -package=mocks Producer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"accreditation/internal/platform/kafka/producer"
	"accreditation/pkg/platform/audit/outbox"
	"accreditation/pkg/platform/audit/outbox/metrics"
	"accreditation/pkg/platform/audit/outbox/store/memory"
	"accreditation/pkg/platform/audit/outbox/worker/mocks"
)

type WorkerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	producer *mocks.MockProducer
	store    *memory.Store
	metrics  *metrics.Metrics
	worker   *Worker
}

func TestWorkerSuite(t *testing.T) {
	suite.Run(t, new(WorkerSuite))
}

func (s *WorkerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.producer = mocks.NewMockProducer(s.ctrl)
	s.store = memory.New()
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.worker = New(s.store, s.producer,
		WithTopic("screening.test"),
		WithBatchSize(10),
		WithMetrics(s.metrics),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func (s *WorkerSuite) append(participantID string, at time.Time) *outbox.Entry {
	e := outbox.NewEntry(uuid.NewString(), participantID, "participant_screened", []byte(`{"Decision":"allowed"}`), at)
	s.Require().NoError(s.store.Append(context.Background(), e))
	return e
}

func (s *WorkerSuite) TestPollPublishesInOrderAndMarksProcessed() {
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first := s.append(uuid.NewString(), base)
	second := s.append(uuid.NewString(), base.Add(time.Second))

	gomock.InOrder(
		s.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg *producer.Message) error {
			s.Equal("screening.test", msg.Topic)
			s.Equal(first.ParticipantID, string(msg.Key))
			s.Equal(first.ID.String(), msg.Headers["outbox_id"])
			s.Equal("participant_screened", msg.Headers["action"])
			s.Equal(first.TenantID, msg.Headers["tenant_id"])
			return nil
		}),
		s.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg *producer.Message) error {
			s.Equal(second.ParticipantID, string(msg.Key))
			return nil
		}),
	)

	s.Equal(2, s.worker.Poll(ctx))

	pending, err := s.store.CountPending(ctx)
	s.Require().NoError(err)
	s.Zero(pending)
	s.Equal(2.0, testutil.ToFloat64(s.metrics.PublishedTotal))
}

func (s *WorkerSuite) TestFailedPublishIsRetried() {
	ctx := context.Background()
	s.append(uuid.NewString(), time.Now())

	s.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	s.Zero(s.worker.Poll(ctx))
	pending, err := s.store.CountPending(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), pending)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.PublishFailures))

	s.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil)
	s.Equal(1, s.worker.Poll(ctx))
}

func (s *WorkerSuite) TestUpdateMetrics() {
	s.append(uuid.NewString(), time.Now())
	s.append(uuid.NewString(), time.Now())

	s.Require().NoError(s.worker.UpdateMetrics(context.Background()))
	s.Equal(2.0, testutil.ToFloat64(s.metrics.PendingDepth))
}

func (s *WorkerSuite) TestStopDrainsPending() {
	w := New(s.store, s.producer,
		WithPollInterval(time.Hour),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	w.Start()
	s.append(uuid.NewString(), time.Now())
	s.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Require().NoError(w.Stop(ctx))

	pending, err := s.store.CountPending(context.Background())
	s.Require().NoError(err)
	s.Zero(pending)
}

func (s *WorkerSuite) TestDrainGivesUpWhenNothingPublishes() {
	w := New(s.store, s.producer,
		WithPollInterval(time.Hour),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	w.Start()
	s.append(uuid.NewString(), time.Now())
	s.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Require().NoError(w.Stop(ctx))

	pending, err := s.store.CountPending(context.Background())
	s.Require().NoError(err)
	s.Equal(int64(1), pending)
}
