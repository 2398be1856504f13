package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	blacklistservice "accreditation/internal/blacklist/service"
	blackliststore "accreditation/internal/blacklist/store"
	"accreditation/internal/blacklist/workers/rescreen"
	"accreditation/internal/duplicate"
	duplicatestore "accreditation/internal/duplicate/store"
	participantstore "accreditation/internal/participant/store"
	"accreditation/internal/platform/config"
	"accreditation/internal/platform/database"
	"accreditation/internal/platform/health"
	"accreditation/internal/platform/kafka/producer"
	"accreditation/internal/platform/redis"
	"accreditation/pkg/platform/audit"
	auditmetrics "accreditation/pkg/platform/audit/metrics"
	"accreditation/pkg/platform/audit/outbox"
	outboxmetrics "accreditation/pkg/platform/audit/outbox/metrics"
	outboxmemory "accreditation/pkg/platform/audit/outbox/store/memory"
	outboxpostgres "accreditation/pkg/platform/audit/outbox/store/postgres"
	outboxworker "accreditation/pkg/platform/audit/outbox/worker"
	"accreditation/pkg/platform/audit/publisher"
	auditmemory "accreditation/pkg/platform/audit/store/memory"
)

const (
	auditBuffer         = 1024
	outboxRetention     = 7 * 24 * time.Hour
	outboxMetricsPeriod = 30 * time.Second
	outboxCleanupPeriod = time.Hour
)

// infra holds the optional external connections. Nil members are not configured.
type infra struct {
	db    *database.Pool
	redis *redis.Client
}

func openInfra(ctx context.Context, cfg config.Server, reg prometheus.Registerer, h *health.Handler, log *slog.Logger) (*infra, error) {
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	dbCfg.Migrate = true
	db, err := database.Open(ctx, dbCfg)
	if err != nil {
		return nil, err
	}
	in := &infra{db: db}
	if db != nil {
		if err := db.RegisterMetrics(reg); err != nil {
			in.Close(log)
			return nil, fmt.Errorf("register database metrics: %w", err)
		}
		h.RegisterCheck("postgres", db.Health)
		log.Info("postgres connected")
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		in.Close(log)
		return nil, err
	}
	in.redis = rc
	if rc != nil {
		if err := rc.RegisterMetrics(reg); err != nil {
			in.Close(log)
			return nil, fmt.Errorf("register redis metrics: %w", err)
		}
		h.RegisterCheck("redis", rc.Health)
		log.Info("redis connected")
	}
	return in, nil
}

func (i *infra) Close(log *slog.Logger) {
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			log.Error("close redis", "error", err)
		}
	}
	if err := i.db.Close(); err != nil {
		log.Error("close database", "error", err)
	}
}

// participants is read by both the duplicate search and the rescreen sweep.
type participants interface {
	duplicate.CandidateSource
	rescreen.ParticipantLister
}

type stores struct {
	participants participants
	blacklist    blacklistservice.Store
	candidates   duplicate.CandidateStore
}

// buildStores keeps participants and denylist entries in Postgres whenever a
// database is configured. The review queue backend follows CANDIDATE_STORE.
func buildStores(cfg config.Server, in *infra) stores {
	var s stores
	if in.db != nil {
		s.participants = participantstore.NewPostgres(in.db.DB())
		s.blacklist = blackliststore.NewPostgres(in.db.DB())
	} else {
		s.participants = participantstore.NewInMemory()
		s.blacklist = blackliststore.NewInMemory()
	}

	switch cfg.CandidateStore {
	case config.CandidateStorePostgres:
		s.candidates = duplicatestore.NewPostgres(in.db.DB())
	case config.CandidateStoreRedis:
		s.candidates = duplicatestore.NewRedis(in.redis.Client, cfg.Redis.StreamMaxLen)
	default:
		s.candidates = duplicatestore.NewInMemory()
	}
	return s
}

// auditPipeline routes screening decisions to the audit trail. With Kafka
// configured events go through the transactional outbox, otherwise they stay
// in process memory.
type auditPipeline struct {
	logger    *audit.Logger
	publisher *publisher.Publisher
	outbox    outbox.Store
	worker    *outboxworker.Worker
	producer  *producer.Producer
}

func buildAudit(ctx context.Context, cfg config.Server, in *infra, reg prometheus.Registerer, h *health.Handler, log *slog.Logger) (*auditPipeline, error) {
	p := &auditPipeline{}
	var sink audit.Store = auditmemory.NewInMemoryStore()

	if cfg.Kafka.Brokers != "" {
		prod, err := producer.New(producer.Config{
			Brokers:         cfg.Kafka.Brokers,
			Acks:            cfg.Kafka.Acks,
			Retries:         5,
			DeliveryTimeout: 30 * time.Second,
		}, log)
		if err != nil {
			return nil, err
		}
		if err := prod.Health(ctx); err != nil {
			log.Warn("kafka not reachable at startup, outbox will retry", "error", err)
		}
		h.RegisterCheck("kafka", prod.Health)
		p.producer = prod

		if in.db != nil {
			p.outbox = outboxpostgres.New(in.db.DB())
		} else {
			p.outbox = outboxmemory.New()
		}
		p.worker = outboxworker.New(p.outbox, prod,
			outboxworker.WithTopic(cfg.Kafka.Topic),
			outboxworker.WithMetrics(outboxmetrics.NewWithRegisterer(reg)),
			outboxworker.WithLogger(log),
		)
		p.worker.Start()
		sink = outbox.NewAuditStore(p.outbox)
		log.Info("audit outbox enabled", "topic", cfg.Kafka.Topic)
	}

	p.publisher = publisher.NewPublisher(sink,
		publisher.WithAsyncBuffer(auditBuffer),
		publisher.WithPublisherLogger(log),
		publisher.WithPublisherMetrics(auditmetrics.NewWithRegisterer(reg)),
	)
	p.logger = audit.NewLogger(log, p.publisher)
	return p, nil
}

// runMaintenance refreshes the pending-depth gauge and prunes published rows
// until ctx is done.
func (p *auditPipeline) runMaintenance(ctx context.Context, log *slog.Logger) {
	metricsTicker := time.NewTicker(outboxMetricsPeriod)
	defer metricsTicker.Stop()
	cleanupTicker := time.NewTicker(outboxCleanupPeriod)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-metricsTicker.C:
			if err := p.worker.UpdateMetrics(ctx); err != nil {
				log.Warn("outbox metrics refresh failed", "error", err)
			}
		case now := <-cleanupTicker.C:
			deleted, err := p.outbox.DeleteProcessedBefore(ctx, now.Add(-outboxRetention))
			if err != nil {
				log.Warn("outbox cleanup failed", "error", err)
				continue
			}
			if deleted > 0 {
				log.Info("outbox cleanup", "deleted", deleted)
			}
		}
	}
}

// Close flushes queued audit events into the outbox before the worker drains it.
func (p *auditPipeline) Close(ctx context.Context, log *slog.Logger) {
	p.publisher.Close()
	if p.worker != nil {
		if err := p.worker.Stop(ctx); err != nil {
			log.Error("outbox worker stop", "error", err)
		}
	}
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			log.Error("close kafka producer", "error", err)
		}
	}
}
