package domain

// Default alert thresholds. Operators tune them through configuration;
// zero or negative values fall back to these.
const (
	DefaultDaysWithoutContact  = 10
	DefaultDaysBeforeDeadline  = 3
	DefaultDaysWithoutActivity = 14
	DefaultMaxOpenTasks        = 15
)

// AlertThresholds parameterizes insight generation.
type AlertThresholds struct {
	// DaysWithoutContact is how long a client may go without a logged
	// touchpoint before counting as stalled.
	DaysWithoutContact int
	// DaysBeforeDeadline is the horizon used when advising which work
	// to triage first.
	DaysBeforeDeadline int
	// DaysWithoutActivity is the silence span at which a stalled client
	// escalates to high priority.
	DaysWithoutActivity int
	// MaxOpenTasks is how many open tasks one client may carry before
	// the workload alert fires.
	MaxOpenTasks int
}

// DefaultThresholds returns the stock thresholds.
func DefaultThresholds() AlertThresholds {
	return AlertThresholds{
		DaysWithoutContact:  DefaultDaysWithoutContact,
		DaysBeforeDeadline:  DefaultDaysBeforeDeadline,
		DaysWithoutActivity: DefaultDaysWithoutActivity,
		MaxOpenTasks:        DefaultMaxOpenTasks,
	}
}

// Normalized replaces zero and negative fields with their defaults.
func (t AlertThresholds) Normalized() AlertThresholds {
	defaults := DefaultThresholds()
	if t.DaysWithoutContact <= 0 {
		t.DaysWithoutContact = defaults.DaysWithoutContact
	}
	if t.DaysBeforeDeadline <= 0 {
		t.DaysBeforeDeadline = defaults.DaysBeforeDeadline
	}
	if t.DaysWithoutActivity <= 0 {
		t.DaysWithoutActivity = defaults.DaysWithoutActivity
	}
	if t.MaxOpenTasks <= 0 {
		t.MaxOpenTasks = defaults.MaxOpenTasks
	}
	return t
}
