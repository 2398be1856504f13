package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	id "accreditation/pkg/domain"
)

// Candidate store backends selectable with CANDIDATE_STORE.
const (
	CandidateStoreMemory   = "memory"
	CandidateStorePostgres = "postgres"
	CandidateStoreRedis    = "redis"
)

// Server captures process level configuration.
type Server struct {
	Addr             string
	DatabaseURL      string
	Redis            RedisConfig
	Kafka            KafkaConfig
	LogLevel         slog.Level
	CandidateStore   string
	RescreenTenants  []id.TenantID
	RescreenInterval time.Duration
	PolicyFile       string
	ShutdownTimeout  time.Duration
}

// RedisConfig configures the Redis client used by the candidate stream store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	StreamMaxLen int64 // approximate cap per event stream, 0 keeps everything
}

// KafkaConfig configures the audit outbox publisher. Empty Brokers disables it.
type KafkaConfig struct {
	Brokers string
	Topic   string
	Acks    string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:        envOr("SCREENING_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: os.Getenv("KAFKA_BROKERS"),
			Topic:   envOr("KAFKA_AUDIT_TOPIC", "screening.audit.events"),
			Acks:    envOr("KAFKA_ACKS", "all"),
		},
		CandidateStore:   strings.ToLower(envOr("CANDIDATE_STORE", CandidateStoreMemory)),
		RescreenInterval: time.Hour,
		PolicyFile:       os.Getenv("SCREENING_POLICY_FILE"),
		ShutdownTimeout:  15 * time.Second,
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(envOr("LOG_LEVEL", "info"))); err != nil {
		return Server{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if v := os.Getenv("REDIS_STREAM_MAXLEN"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return Server{}, fmt.Errorf("REDIS_STREAM_MAXLEN: invalid value %q", v)
		}
		cfg.Redis.StreamMaxLen = n
	}
	if v := os.Getenv("RESCREEN_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Server{}, fmt.Errorf("RESCREEN_INTERVAL: invalid duration %q", v)
		}
		cfg.RescreenInterval = d
	}
	tenants, err := parseTenants(os.Getenv("RESCREEN_TENANTS"))
	if err != nil {
		return Server{}, err
	}
	cfg.RescreenTenants = tenants

	switch cfg.CandidateStore {
	case CandidateStoreMemory:
	case CandidateStorePostgres:
		if cfg.DatabaseURL == "" {
			return Server{}, fmt.Errorf("CANDIDATE_STORE=postgres requires DATABASE_URL")
		}
	case CandidateStoreRedis:
		if cfg.Redis.URL == "" {
			return Server{}, fmt.Errorf("CANDIDATE_STORE=redis requires REDIS_URL")
		}
	default:
		return Server{}, fmt.Errorf("CANDIDATE_STORE: unknown backend %q", cfg.CandidateStore)
	}
	return cfg, nil
}

func parseTenants(raw string) ([]id.TenantID, error) {
	var out []id.TenantID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tenantID, err := id.ParseTenantID(part)
		if err != nil {
			return nil, fmt.Errorf("RESCREEN_TENANTS: %w", err)
		}
		out = append(out, tenantID)
	}
	return out, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
