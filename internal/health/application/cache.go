package application

import (
	"context"

	"github.com/felixgeelhaar/pulso/internal/health/domain"
)

// ScoreCache stores the most recent portfolio snapshot. The sweep
// worker writes it after every run; the portfolio listing reads it to
// avoid re-evaluating on every CLI invocation. Entries expire with the
// configured TTL, and a miss simply means "evaluate fresh".
type ScoreCache interface {
	// Get returns the cached snapshot and whether one was present.
	Get(ctx context.Context) ([]domain.HealthScore, bool, error)

	// Put replaces the snapshot.
	Put(ctx context.Context, scores []domain.HealthScore) error
}
