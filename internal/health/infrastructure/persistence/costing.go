package persistence

import "time"

// DefaultHourlyRate prices logged time when neither the member nor the
// configuration provides a rate.
const DefaultHourlyRate = 40.0

// CostingConfig controls how month-to-date delivery cost is estimated
// from logged time. Both signal source implementations receive the same
// instance, so the rate fallback cannot diverge between the single and
// batch paths.
type CostingConfig struct {
	// DefaultHourlyRate prices time logged by members without a rate.
	DefaultHourlyRate float64
}

func (c CostingConfig) rate() float64 {
	if c.DefaultHourlyRate <= 0 {
		return DefaultHourlyRate
	}
	return c.DefaultHourlyRate
}

// costWindowStart returns the first instant of now's calendar month in
// UTC. Delivery cost accumulates from here, mirroring how monthly
// budgets reset.
func costWindowStart(now time.Time) time.Time {
	year, month, _ := now.UTC().Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// digestWindowStart returns the start of the four-week reporting window.
func digestWindowStart(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, -28)
}
