package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ClientRef identifies a client for scoring without dragging the full
// CRM aggregate into the health engine.
type ClientRef struct {
	ID   uuid.UUID
	Name string
}

// Budget is an optional non-negative monthly amount. Absence is
// meaningful and distinct from an explicit zero: both disable the
// profitability comparison, but a zero budget is a deliberate choice
// while absence usually means nobody filled it in yet.
type Budget struct {
	amount float64
	set    bool
}

// BudgetOf returns a set budget with the given amount.
func BudgetOf(amount float64) Budget {
	return Budget{amount: amount, set: true}
}

// NoBudget returns the absent budget.
func NoBudget() Budget {
	return Budget{}
}

// Amount returns the budget amount and whether one is set.
func (b Budget) Amount() (float64, bool) {
	return b.amount, b.set
}

// IsSet reports whether a budget has been configured.
func (b Budget) IsSet() bool {
	return b.set
}

// TaskCounts summarizes a client's delivery pipeline.
type TaskCounts struct {
	Total     int
	Completed int
	Overdue   int
}

// Signals carries everything the scoring engine reads about one client.
// The zero value is the well-defined "no recorded activity" state: never
// contacted, no tasks, no digests, no budget, zero cost, no follow-ups.
type Signals struct {
	LastContactAt    *time.Time
	Tasks            TaskCounts
	RecentDigests    int
	Budget           Budget
	EstimatedCost    float64
	OverdueFollowups int
}

// Validate reports structural violations in the signals. Counts must be
// non-negative, completed tasks cannot exceed the total, and monetary
// values cannot be negative. All violations wrap ErrInconsistentSignals.
func (s Signals) Validate() error {
	if s.Tasks.Total < 0 || s.Tasks.Completed < 0 || s.Tasks.Overdue < 0 {
		return fmt.Errorf("%w: negative task counts (total=%d completed=%d overdue=%d)",
			ErrInconsistentSignals, s.Tasks.Total, s.Tasks.Completed, s.Tasks.Overdue)
	}
	if s.Tasks.Completed > s.Tasks.Total {
		return fmt.Errorf("%w: completed tasks (%d) exceed total (%d)",
			ErrInconsistentSignals, s.Tasks.Completed, s.Tasks.Total)
	}
	if s.RecentDigests < 0 {
		return fmt.Errorf("%w: negative digest count (%d)", ErrInconsistentSignals, s.RecentDigests)
	}
	if s.OverdueFollowups < 0 {
		return fmt.Errorf("%w: negative follow-up count (%d)", ErrInconsistentSignals, s.OverdueFollowups)
	}
	if s.EstimatedCost < 0 {
		return fmt.Errorf("%w: negative estimated cost (%.2f)", ErrInconsistentSignals, s.EstimatedCost)
	}
	if amount, ok := s.Budget.Amount(); ok && amount < 0 {
		return fmt.Errorf("%w: negative budget (%.2f)", ErrInconsistentSignals, amount)
	}
	return nil
}

// SignalSet holds batch-fetched signals keyed by client ID.
type SignalSet map[uuid.UUID]Signals

// For returns the signals for a client. Clients without any recorded
// activity are absent from the map and resolve to the zero Signals.
func (s SignalSet) For(clientID uuid.UUID) Signals {
	return s[clientID]
}

// DaysSince converts a last-contact timestamp into whole days elapsed
// before now, truncating partial days. A nil timestamp stays nil, which
// the communication factor treats as "never contacted". Contacts logged
// in the future count as zero days.
func DaysSince(last *time.Time, now time.Time) *int {
	if last == nil {
		return nil
	}
	days := int(now.Sub(*last).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}
