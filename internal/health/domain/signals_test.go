package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignals_Validate(t *testing.T) {
	tests := []struct {
		name    string
		signals domain.Signals
		wantErr bool
	}{
		{"zero signals are valid", domain.Signals{}, false},
		{
			"consistent counts",
			domain.Signals{
				Tasks:            domain.TaskCounts{Total: 5, Completed: 3, Overdue: 1},
				RecentDigests:    2,
				Budget:           domain.BudgetOf(1500),
				EstimatedCost:    820.5,
				OverdueFollowups: 1,
			},
			false,
		},
		{"completed exceeds total", domain.Signals{Tasks: domain.TaskCounts{Total: 2, Completed: 3}}, true},
		{"negative total", domain.Signals{Tasks: domain.TaskCounts{Total: -1}}, true},
		{"negative completed", domain.Signals{Tasks: domain.TaskCounts{Total: 2, Completed: -1}}, true},
		{"negative overdue", domain.Signals{Tasks: domain.TaskCounts{Total: 2, Overdue: -2}}, true},
		{"negative digests", domain.Signals{RecentDigests: -1}, true},
		{"negative followups", domain.Signals{OverdueFollowups: -3}, true},
		{"negative cost", domain.Signals{EstimatedCost: -0.01}, true},
		{"negative budget", domain.Signals{Budget: domain.BudgetOf(-100)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.signals.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInconsistentSignals)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, domain.DaysSince(nil, now))
	})

	t.Run("partial days truncate", func(t *testing.T) {
		last := now.Add(-time.Duration(3*24+23) * time.Hour) // 3 days 23h ago
		got := domain.DaysSince(&last, now)
		require.NotNil(t, got)
		assert.Equal(t, 3, *got)
	})

	t.Run("exact boundary", func(t *testing.T) {
		last := now.AddDate(0, 0, -4)
		got := domain.DaysSince(&last, now)
		require.NotNil(t, got)
		assert.Equal(t, 4, *got)
	})

	t.Run("future contact counts as today", func(t *testing.T) {
		last := now.Add(6 * time.Hour)
		got := domain.DaysSince(&last, now)
		require.NotNil(t, got)
		assert.Equal(t, 0, *got)
	})
}

func TestBudget(t *testing.T) {
	amount, ok := domain.BudgetOf(2500).Amount()
	assert.True(t, ok)
	assert.Equal(t, 2500.0, amount)
	assert.True(t, domain.BudgetOf(0).IsSet(), "explicit zero is still a set budget")

	_, ok = domain.NoBudget().Amount()
	assert.False(t, ok)
	assert.False(t, domain.NoBudget().IsSet())
}

func TestSignalSet_For(t *testing.T) {
	known := uuid.New()
	set := domain.SignalSet{
		known: {RecentDigests: 3},
	}

	assert.Equal(t, 3, set.For(known).RecentDigests)

	missing := set.For(uuid.New())
	assert.Equal(t, domain.Signals{}, missing, "unknown clients resolve to zero signals")
	assert.NoError(t, missing.Validate())
}
