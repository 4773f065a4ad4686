package observability

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// ProbeStatus represents the readiness state of a dependency.
type ProbeStatus string

const (
	ProbeStatusHealthy   ProbeStatus = "healthy"
	ProbeStatusDegraded  ProbeStatus = "degraded"
	ProbeStatusUnhealthy ProbeStatus = "unhealthy"
)

// ProbeResult is the result of a readiness probe.
type ProbeResult struct {
	Status    ProbeStatus   `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration_ns"`
	Timestamp time.Time     `json:"timestamp"`
}

// Probe checks one dependency.
type Probe func(ctx context.Context) ProbeResult

// ProbeRegistry manages readiness probes for process dependencies.
type ProbeRegistry struct {
	mu      sync.RWMutex
	probes  map[string]Probe
	results map[string]ProbeResult
}

// NewProbeRegistry creates a new probe registry.
func NewProbeRegistry() *ProbeRegistry {
	return &ProbeRegistry{
		probes:  make(map[string]Probe),
		results: make(map[string]ProbeResult),
	}
}

// Register adds a probe for a dependency.
func (r *ProbeRegistry) Register(name string, probe Probe) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probes[name] = probe
}

// Check runs all probes and returns their results.
func (r *ProbeRegistry) Check(ctx context.Context) map[string]ProbeResult {
	r.mu.RLock()
	probes := make(map[string]Probe, len(r.probes))
	for k, v := range r.probes {
		probes[k] = v
	}
	r.mu.RUnlock()

	results := make(map[string]ProbeResult, len(probes))
	for name, probe := range probes {
		start := time.Now()
		result := probe(ctx)
		result.Duration = time.Since(start)
		result.Timestamp = time.Now()
		results[name] = result
	}

	r.mu.Lock()
	r.results = results
	r.mu.Unlock()

	return results
}

// OverallStatus returns the aggregate status across the last Check run.
func (r *ProbeRegistry) OverallStatus() ProbeStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := ProbeStatusHealthy
	for _, result := range r.results {
		switch result.Status {
		case ProbeStatusUnhealthy:
			return ProbeStatusUnhealthy
		case ProbeStatusDegraded:
			status = ProbeStatusDegraded
		}
	}
	return status
}

// Readiness is a summary of dependency readiness.
type Readiness struct {
	Status    ProbeStatus            `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]ProbeResult `json:"checks"`
}

// CheckReadiness runs all probes and returns the aggregate readiness.
func (r *ProbeRegistry) CheckReadiness(ctx context.Context) Readiness {
	checks := r.Check(ctx)
	return Readiness{
		Status:    r.OverallStatus(),
		Timestamp: time.Now(),
		Checks:    checks,
	}
}

// ToJSON serializes the readiness summary to JSON.
func (h Readiness) ToJSON() ([]byte, error) {
	return json.Marshal(h)
}

// DatabaseProbe builds a probe from a database ping. A failing database
// makes the process unhealthy.
func DatabaseProbe(pingFunc func(ctx context.Context) error) Probe {
	return func(ctx context.Context) ProbeResult {
		if err := pingFunc(ctx); err != nil {
			return ProbeResult{
				Status:  ProbeStatusUnhealthy,
				Message: "database connection failed: " + err.Error(),
			}
		}
		return ProbeResult{
			Status:  ProbeStatusHealthy,
			Message: "database connection healthy",
		}
	}
}

// RedisProbe builds a probe from a Redis ping. The cache is optional, so a
// failing Redis only degrades the process.
func RedisProbe(pingFunc func(ctx context.Context) error) Probe {
	return func(ctx context.Context) ProbeResult {
		if err := pingFunc(ctx); err != nil {
			return ProbeResult{
				Status:  ProbeStatusDegraded,
				Message: "redis connection failed: " + err.Error(),
			}
		}
		return ProbeResult{
			Status:  ProbeStatusHealthy,
			Message: "redis connection healthy",
		}
	}
}

// RabbitMQProbe builds a probe from a broker connectivity check. Events are
// advisory, so a failing broker only degrades the process.
func RabbitMQProbe(checkFunc func(ctx context.Context) error) Probe {
	return func(ctx context.Context) ProbeResult {
		if err := checkFunc(ctx); err != nil {
			return ProbeResult{
				Status:  ProbeStatusDegraded,
				Message: "rabbitmq connection failed: " + err.Error(),
			}
		}
		return ProbeResult{
			Status:  ProbeStatusHealthy,
			Message: "rabbitmq connection healthy",
		}
	}
}
