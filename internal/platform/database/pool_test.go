package database

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWithoutURLIsNotConfigured(t *testing.T) {
	pool, err := Open(context.Background(), DefaultConfig())
	require.NoError(t, err)
	assert.Nil(t, pool)

	assert.Error(t, pool.Health(context.Background()))
	assert.NoError(t, pool.Close())
	assert.NoError(t, pool.RegisterMetrics(prometheus.NewRegistry()))
}
