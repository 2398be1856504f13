package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	blacklistmetrics "accreditation/internal/blacklist/metrics"
	blacklistservice "accreditation/internal/blacklist/service"
	"accreditation/internal/blacklist/workers/rescreen"
	"accreditation/internal/duplicate"
	duplicatemetrics "accreditation/internal/duplicate/metrics"
	"accreditation/internal/platform/config"
	"accreditation/internal/platform/health"
	"accreditation/internal/platform/logger"
	screeninghandler "accreditation/internal/screening/handler"
	screeningmetrics "accreditation/internal/screening/metrics"
	screeningservice "accreditation/internal/screening/service"
	"accreditation/internal/screening/tracer"
	"accreditation/pkg/platform/middleware/request"
	"accreditation/pkg/platform/validation"
)

// main wires configuration, storage and the screening services, then serves
// HTTP until SIGINT or SIGTERM.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "screening:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)
	log.Info("initializing screening service",
		"addr", cfg.Addr,
		"candidate_store", cfg.CandidateStore,
		"kafka_enabled", cfg.Kafka.Brokers != "",
		"rescreen_tenants", len(cfg.RescreenTenants),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.DefaultRegisterer
	healthHandler := health.New(envOr("SCREENING_ENV", "local"))

	infra, err := openInfra(ctx, cfg, reg, healthHandler, log)
	if err != nil {
		return err
	}
	defer infra.Close(log)

	stores := buildStores(cfg, infra)
	auditPipeline, err := buildAudit(ctx, cfg, infra, reg, healthHandler, log)
	if err != nil {
		return err
	}

	blacklistSvc := blacklistservice.New(stores.blacklist,
		blacklistservice.WithMatcherConfig(policy.MatcherConfig()),
		blacklistservice.WithMetrics(blacklistmetrics.NewWithRegisterer(reg)),
		blacklistservice.WithLogger(log),
	)
	scorer, err := duplicate.NewScorer(policy.ScorerConfig())
	if err != nil {
		return fmt.Errorf("scorer: %w", err)
	}
	classifier, err := duplicate.NewClassifier(policy.Thresholds())
	if err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	duplicateSvc := duplicate.New(stores.participants, stores.candidates, scorer, classifier,
		duplicate.WithCandidateCap(policy.Duplicate.CandidateCap),
		duplicate.WithPersistenceFloor(policy.Duplicate.PersistenceFloor),
		duplicate.WithScoringWorkers(policy.Duplicate.ScoringWorkers),
		duplicate.WithMetrics(duplicatemetrics.NewWithRegisterer(reg)),
		duplicate.WithLogger(log),
	)
	screeningSvc := screeningservice.New(blacklistSvc, duplicateSvc,
		screeningservice.WithAudit(auditPipeline.logger),
		screeningservice.WithTracer(tracer.NewOTel()),
		screeningservice.WithMetrics(screeningmetrics.NewWithRegisterer(reg)),
		screeningservice.WithLogger(log),
	)

	var rescreenWorker *rescreen.Worker
	if len(cfg.RescreenTenants) > 0 {
		rescreenWorker, err = rescreen.New(stores.participants, blacklistSvc, cfg.RescreenTenants,
			rescreen.WithInterval(cfg.RescreenInterval),
			rescreen.WithAudit(auditPipeline.logger),
			rescreen.WithMetrics(rescreen.NewMetricsWithRegisterer(reg)),
			rescreen.WithLogger(log),
		)
		if err != nil {
			return fmt.Errorf("rescreen worker: %w", err)
		}
	}

	router := newRouter(screeninghandler.New(screeningSvc, log), healthHandler, request.NewMetricsWithRegisterer(reg), log)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if rescreenWorker != nil {
		g.Go(func() error {
			if err := rescreenWorker.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	if auditPipeline.outbox != nil {
		g.Go(func() error {
			auditPipeline.runMaintenance(gctx, log)
			return nil
		})
	}

	<-gctx.Done()
	log.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	auditPipeline.Close(shutdownCtx, log)

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func newRouter(screening *screeninghandler.Handler, healthHandler *health.Handler, httpMetrics *request.Metrics, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(log))
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(request.Logger(log))
	r.Use(request.Latency(httpMetrics))

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(30 * time.Second))
		r.Use(request.BodyLimit(validation.MaxBodySize))
		r.Use(request.ContentTypeJSON)
		screening.Register(r)
	})
	return r
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
