package redis

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accreditation/internal/platform/config"
)

type fixedStats struct{ stats redis.PoolStats }

func (f fixedStats) PoolStats() *redis.PoolStats { return &f.stats }

func TestPoolCollectorReportsStats(t *testing.T) {
	c := newPoolCollector(fixedStats{stats: redis.PoolStats{Hits: 7, Misses: 2, TotalConns: 4, IdleConns: 3}})

	expected := `
# HELP screening_redis_pool_hits_total Times a connection was found in the pool
# TYPE screening_redis_pool_hits_total counter
screening_redis_pool_hits_total 7
# HELP screening_redis_pool_idle_conns Idle connections in the pool
# TYPE screening_redis_pool_idle_conns gauge
screening_redis_pool_idle_conns 3
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"screening_redis_pool_hits_total", "screening_redis_pool_idle_conns"))
	assert.Equal(t, 6, testutil.CollectAndCount(c))
}

func TestNewWithoutURL(t *testing.T) {
	client, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)
}
