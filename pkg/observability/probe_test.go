package observability

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeRegistry(t *testing.T) {
	t.Run("runs all registered probes", func(t *testing.T) {
		registry := NewProbeRegistry()
		registry.Register("ok", func(ctx context.Context) ProbeResult {
			return ProbeResult{Status: ProbeStatusHealthy}
		})
		registry.Register("broken", func(ctx context.Context) ProbeResult {
			return ProbeResult{Status: ProbeStatusUnhealthy, Message: "down"}
		})

		results := registry.Check(context.Background())

		require.Len(t, results, 2)
		assert.Equal(t, ProbeStatusHealthy, results["ok"].Status)
		assert.Equal(t, ProbeStatusUnhealthy, results["broken"].Status)
		assert.Equal(t, "down", results["broken"].Message)
		assert.False(t, results["ok"].Timestamp.IsZero())
	})

	t.Run("overall status before any check is healthy", func(t *testing.T) {
		registry := NewProbeRegistry()
		assert.Equal(t, ProbeStatusHealthy, registry.OverallStatus())
	})

	t.Run("unhealthy wins over degraded", func(t *testing.T) {
		registry := NewProbeRegistry()
		registry.Register("degraded", func(ctx context.Context) ProbeResult {
			return ProbeResult{Status: ProbeStatusDegraded}
		})
		registry.Register("unhealthy", func(ctx context.Context) ProbeResult {
			return ProbeResult{Status: ProbeStatusUnhealthy}
		})

		registry.Check(context.Background())

		assert.Equal(t, ProbeStatusUnhealthy, registry.OverallStatus())
	})

	t.Run("degraded wins over healthy", func(t *testing.T) {
		registry := NewProbeRegistry()
		registry.Register("healthy", func(ctx context.Context) ProbeResult {
			return ProbeResult{Status: ProbeStatusHealthy}
		})
		registry.Register("degraded", func(ctx context.Context) ProbeResult {
			return ProbeResult{Status: ProbeStatusDegraded}
		})

		registry.Check(context.Background())

		assert.Equal(t, ProbeStatusDegraded, registry.OverallStatus())
	})
}

func TestCheckReadiness(t *testing.T) {
	registry := NewProbeRegistry()
	registry.Register("database", DatabaseProbe(func(ctx context.Context) error {
		return nil
	}))

	readiness := registry.CheckReadiness(context.Background())

	assert.Equal(t, ProbeStatusHealthy, readiness.Status)
	assert.Len(t, readiness.Checks, 1)
	assert.False(t, readiness.Timestamp.IsZero())

	body, err := readiness.ToJSON()
	require.NoError(t, err)

	var decoded Readiness
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, ProbeStatusHealthy, decoded.Status)
}

func TestDatabaseProbe(t *testing.T) {
	t.Run("healthy on successful ping", func(t *testing.T) {
		probe := DatabaseProbe(func(ctx context.Context) error { return nil })

		result := probe(context.Background())

		assert.Equal(t, ProbeStatusHealthy, result.Status)
	})

	t.Run("unhealthy on failed ping", func(t *testing.T) {
		probe := DatabaseProbe(func(ctx context.Context) error {
			return errors.New("connection refused")
		})

		result := probe(context.Background())

		assert.Equal(t, ProbeStatusUnhealthy, result.Status)
		assert.Contains(t, result.Message, "connection refused")
	})
}

func TestRedisProbe(t *testing.T) {
	probe := RedisProbe(func(ctx context.Context) error {
		return errors.New("no route to host")
	})

	result := probe(context.Background())

	assert.Equal(t, ProbeStatusDegraded, result.Status)
	assert.Contains(t, result.Message, "no route to host")
}

func TestRabbitMQProbe(t *testing.T) {
	probe := RabbitMQProbe(func(ctx context.Context) error {
		return errors.New("connection is closed")
	})

	result := probe(context.Background())

	assert.Equal(t, ProbeStatusDegraded, result.Status)
	assert.Contains(t, result.Message, "connection is closed")
}
