package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"accreditation/internal/platform/kafka/producer"
	"accreditation/pkg/platform/audit/outbox"
	"accreditation/pkg/platform/audit/outbox/metrics"
)

// Producer publishes a message synchronously. Satisfied by *producer.Producer.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// Worker polls the outbox table and publishes events to Kafka.
type Worker struct {
	store        outbox.Store
	producer     Producer
	topic        string
	batchSize    int
	pollInterval time.Duration
	metrics      *metrics.Metrics
	logger       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures the Worker.
type Option func(*Worker)

// WithTopic sets the Kafka topic for publishing.
func WithTopic(topic string) Option {
	return func(w *Worker) {
		w.topic = topic
	}
}

// WithBatchSize sets the maximum number of entries to fetch per poll.
func WithBatchSize(size int) Option {
	return func(w *Worker) {
		if size > 0 {
			w.batchSize = size
		}
	}
}

// WithPollInterval sets the interval between polls.
func WithPollInterval(interval time.Duration) Option {
	return func(w *Worker) {
		if interval > 0 {
			w.pollInterval = interval
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// New creates a new outbox worker.
func New(store outbox.Store, prod Producer, opts ...Option) *Worker {
	if store == nil || prod == nil {
		panic("worker.New: store and producer are required")
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		store:        store,
		producer:     prod,
		topic:        "screening.audit.events",
		batchSize:    100,
		pollInterval: 100 * time.Millisecond,
		ctx:          ctx,
		cancel:       cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w
}

// Start begins the polling loop in a background goroutine.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Worker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.drain()
			return
		case <-ticker.C:
			w.Poll(w.ctx)
		}
	}
}

// Poll fetches one batch and publishes it. It returns the number of entries
// published and marked processed.
func (w *Worker) Poll(ctx context.Context) int {
	start := time.Now()
	defer func() { w.metrics.ObservePollDuration(time.Since(start)) }()

	entries, err := w.store.FetchUnprocessed(ctx, w.batchSize)
	if err != nil {
		w.logger.ErrorContext(ctx, "failed to fetch outbox entries", "error", err)
		w.metrics.IncPublishFailures()
		return 0
	}
	if len(entries) == 0 {
		return 0
	}
	w.metrics.ObserveBatchSize(len(entries))
	return w.publishBatch(ctx, entries)
}

func (w *Worker) publishBatch(ctx context.Context, entries []*outbox.Entry) int {
	published := 0
	for _, entry := range entries {
		if err := w.publishEntry(ctx, entry); err != nil {
			w.logger.ErrorContext(ctx, "failed to publish outbox entry",
				"id", entry.ID,
				"action", entry.Action,
				"error", err,
			)
			w.metrics.IncPublishFailures()
			// retried on the next poll
			continue
		}
		if err := w.store.MarkProcessed(ctx, entry.ID, time.Now()); err != nil {
			// Published but not marked: it will be published again.
			w.logger.ErrorContext(ctx, "failed to mark entry as processed",
				"id", entry.ID,
				"error", err,
			)
			continue
		}
		w.metrics.IncPublished()
		published++
	}
	return published
}

func (w *Worker) publishEntry(ctx context.Context, entry *outbox.Entry) error {
	start := time.Now()
	msg := &producer.Message{
		Topic: w.topic,
		Key:   []byte(entry.ParticipantID),
		Value: entry.Payload,
		Headers: map[string]string{
			"outbox_id":      entry.ID.String(),
			"tenant_id":      entry.TenantID,
			"participant_id": entry.ParticipantID,
			"action":         entry.Action,
		},
	}
	if err := w.producer.Produce(ctx, msg); err != nil {
		return err
	}
	w.metrics.ObservePublishDuration(time.Since(start))
	return nil
}

// drain publishes what is left during shutdown, bounded by a short timeout.
func (w *Worker) drain() {
	w.logger.Info("draining outbox worker")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for {
		entries, err := w.store.FetchUnprocessed(ctx, w.batchSize)
		if err != nil {
			w.logger.Error("failed to fetch entries during drain", "error", err)
			return
		}
		if len(entries) == 0 {
			return
		}
		if w.publishBatch(ctx, entries) == 0 {
			// nothing moved; avoid spinning on a broken broker
			return
		}
	}
}

// Stop gracefully stops the worker.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UpdateMetrics refreshes the pending depth gauge.
func (w *Worker) UpdateMetrics(ctx context.Context) error {
	if w.metrics == nil {
		return nil
	}
	count, err := w.store.CountPending(ctx)
	if err != nil {
		return err
	}
	w.metrics.SetPendingDepth(count)
	return nil
}
