// Package redis builds the go-redis client backing the candidate stream store.
package redis

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"accreditation/internal/platform/config"
)

// Client embeds *redis.Client so stores can take c.Client directly.
type Client struct {
	*redis.Client
}

// New connects and pings. An empty URL returns (nil, nil).
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: client}, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// RegisterMetrics exports pool statistics, read at scrape time.
func (c *Client) RegisterMetrics(reg prometheus.Registerer) error {
	if c == nil {
		return nil
	}
	return reg.Register(newPoolCollector(c.Client))
}

type poolStatser interface {
	PoolStats() *redis.PoolStats
}

type poolCollector struct {
	src        poolStatser
	hits       *prometheus.Desc
	misses     *prometheus.Desc
	timeouts   *prometheus.Desc
	staleConns *prometheus.Desc
	totalConns *prometheus.Desc
	idleConns  *prometheus.Desc
}

func newPoolCollector(src poolStatser) *poolCollector {
	return &poolCollector{
		src:        src,
		hits:       prometheus.NewDesc("screening_redis_pool_hits_total", "Times a connection was found in the pool", nil, nil),
		misses:     prometheus.NewDesc("screening_redis_pool_misses_total", "Times a connection was not found in the pool", nil, nil),
		timeouts:   prometheus.NewDesc("screening_redis_pool_timeouts_total", "Times a connection could not be obtained in time", nil, nil),
		staleConns: prometheus.NewDesc("screening_redis_pool_stale_conns_total", "Stale connections removed from the pool", nil, nil),
		totalConns: prometheus.NewDesc("screening_redis_pool_total_conns", "Connections in the pool", nil, nil),
		idleConns:  prometheus.NewDesc("screening_redis_pool_idle_conns", "Idle connections in the pool", nil, nil),
	}
}

func (p *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- p.hits
	ch <- p.misses
	ch <- p.timeouts
	ch <- p.staleConns
	ch <- p.totalConns
	ch <- p.idleConns
}

func (p *poolCollector) Collect(ch chan<- prometheus.Metric) {
	s := p.src.PoolStats()
	ch <- prometheus.MustNewConstMetric(p.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(p.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(p.timeouts, prometheus.CounterValue, float64(s.Timeouts))
	ch <- prometheus.MustNewConstMetric(p.staleConns, prometheus.CounterValue, float64(s.StaleConns))
	ch <- prometheus.MustNewConstMetric(p.totalConns, prometheus.GaugeValue, float64(s.TotalConns))
	ch <- prometheus.MustNewConstMetric(p.idleConns, prometheus.GaugeValue, float64(s.IdleConns))
}
