package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestScoreCommunication(t *testing.T) {
	tests := []struct {
		name string
		days *int
		want int
	}{
		{"never contacted", nil, 0},
		{"same day", intPtr(0), 25},
		{"three days is still recent", intPtr(3), 25},
		{"four days drops a band", intPtr(4), 20},
		{"one week", intPtr(7), 20},
		{"eight days", intPtr(8), 15},
		{"two weeks", intPtr(14), 15},
		{"fifteen days", intPtr(15), 8},
		{"one month", intPtr(30), 8},
		{"over a month", intPtr(31), 0},
		{"long dormant", intPtr(365), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ScoreCommunication(tt.days))
		})
	}
}

func TestScoreTasks(t *testing.T) {
	tests := []struct {
		name   string
		counts domain.TaskCounts
		want   int
	}{
		{"no tasks is neutral", domain.TaskCounts{}, 15},
		{"everything done on time", domain.TaskCounts{Total: 4, Completed: 4}, 25},
		{"half done, nothing overdue", domain.TaskCounts{Total: 4, Completed: 2}, 15},
		{"nothing done, nothing overdue", domain.TaskCounts{Total: 3}, 5},
		{"completion ratio floors", domain.TaskCounts{Total: 3, Completed: 2}, 18},
		{"one overdue cancels the bonus and bites", domain.TaskCounts{Total: 4, Completed: 2, Overdue: 1}, 7},
		{"two overdue", domain.TaskCounts{Total: 4, Completed: 2, Overdue: 2}, 4},
		{"penalty caps at ten", domain.TaskCounts{Total: 4, Completed: 4, Overdue: 5}, 10},
		{"penalty never goes negative", domain.TaskCounts{Total: 10, Completed: 1, Overdue: 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ScoreTasks(tt.counts))
		})
	}
}

func TestScoreTasks_OverduePenaltyIsMonotonic(t *testing.T) {
	counts := domain.TaskCounts{Total: 6, Completed: 5}
	previous := domain.ScoreTasks(counts)
	for overdue := 1; overdue <= 8; overdue++ {
		counts.Overdue = overdue
		current := domain.ScoreTasks(counts)
		assert.LessOrEqual(t, current, previous,
			"adding overdue tasks must never raise the task factor (overdue=%d)", overdue)
		previous = current
	}
}

func TestScoreDigests(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 0},
		{1, 4},
		{2, 8},
		{3, 12},
		{4, 15},
		{5, 15},
		{12, 15},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ScoreDigests(tt.count), "count=%d", tt.count)
	}
}

func TestScoreProfitability(t *testing.T) {
	tests := []struct {
		name   string
		budget domain.Budget
		cost   float64
		want   int
	}{
		{"no budget is neutral", domain.NoBudget(), 5000, 10},
		{"zero budget is neutral", domain.BudgetOf(0), 5000, 10},
		{"no cost yet", domain.BudgetOf(1000), 0, 20},
		{"comfortable margin", domain.BudgetOf(1000), 700, 20},
		{"margin tightening", domain.BudgetOf(1000), 701, 15},
		{"watch zone", domain.BudgetOf(1000), 900, 15},
		{"break even", domain.BudgetOf(1000), 1000, 10},
		{"slight overrun", domain.BudgetOf(1000), 1200, 5},
		{"heavy overrun", domain.BudgetOf(1000), 1201, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ScoreProfitability(tt.budget, tt.cost))
		})
	}
}

func TestScoreFollowups(t *testing.T) {
	tests := []struct {
		overdue int
		want    int
	}{
		{0, 15},
		{1, 8},
		{2, 8},
		{3, 0},
		{9, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ScoreFollowups(tt.overdue), "overdue=%d", tt.overdue)
	}
}

// Every factor must stay inside its advertised budget no matter the
// input, so the composed score can never leave [0, 100].
func TestFactorBounds(t *testing.T) {
	for days := 0; days <= 60; days++ {
		got := domain.ScoreCommunication(intPtr(days))
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 25)
	}

	for total := 0; total <= 8; total++ {
		for completed := 0; completed <= total; completed++ {
			for overdue := 0; overdue <= 8; overdue++ {
				got := domain.ScoreTasks(domain.TaskCounts{Total: total, Completed: completed, Overdue: overdue})
				assert.GreaterOrEqual(t, got, 0, "total=%d completed=%d overdue=%d", total, completed, overdue)
				assert.LessOrEqual(t, got, 25, "total=%d completed=%d overdue=%d", total, completed, overdue)
			}
		}
	}

	for count := 0; count <= 10; count++ {
		got := domain.ScoreDigests(count)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 15)
	}

	for _, budget := range []domain.Budget{domain.NoBudget(), domain.BudgetOf(0), domain.BudgetOf(500), domain.BudgetOf(10000)} {
		for cost := 0.0; cost <= 20000; cost += 250 {
			got := domain.ScoreProfitability(budget, cost)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 20)
		}
	}

	for overdue := 0; overdue <= 10; overdue++ {
		got := domain.ScoreFollowups(overdue)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 15)
	}
}
