package domain

// Factor point budgets. Communication and tasks carry the most weight
// because stale contact and a stalled pipeline are the two strongest
// churn predictors for a service agency.
const (
	maxCommunicationPoints = 25
	maxTaskPoints          = 25
	maxDigestPoints        = 15
	maxProfitabilityPoints = 20
	maxFollowupPoints      = 15
)

// Communication recency bands, in whole days since the last logged touch.
const (
	contactRecentDays   = 3
	contactActiveDays   = 7
	contactCoolingDays  = 14
	contactDormantDays  = 30
	contactActivePoints = 20
	contactCoolingPts   = 15
	contactDormantPts   = 8
)

// Task factor tuning.
const (
	taskNoWorkPoints       = 15 // neutral: nothing planned is not a crisis
	taskCompletionPoints   = 20
	taskOnTimeBonus        = 5
	taskOverduePenaltyStep = 3
	taskOverduePenaltyCap  = 10
)

// Digest factor tuning: one recent digest per week is the target cadence.
const (
	digestCountCap  = 4
	digestPointsPer = 4
)

// Profitability ratio bands (estimated cost / monthly budget).
const (
	profitComfortRatio  = 0.7
	profitWatchRatio    = 0.9
	profitBreakRatio    = 1.0
	profitOverrunRatio  = 1.2
	profitNoBudgetPts   = 10
	profitWatchPoints   = 15
	profitBreakPoints   = 10
	profitOverrunPoints = 5
)

// Follow-up factor tuning.
const (
	followupGracePoints = 8
	followupGraceCount  = 2
)

// ScoreCommunication scores contact recency out of 25. A nil value means
// the client was never contacted and scores zero.
//
//	<= 3 days  -> 25
//	<= 7 days  -> 20
//	<= 14 days -> 15
//	<= 30 days -> 8
//	older      -> 0
func ScoreCommunication(daysSinceContact *int) int {
	if daysSinceContact == nil {
		return 0
	}
	switch days := *daysSinceContact; {
	case days <= contactRecentDays:
		return maxCommunicationPoints
	case days <= contactActiveDays:
		return contactActivePoints
	case days <= contactCoolingDays:
		return contactCoolingPts
	case days <= contactDormantDays:
		return contactDormantPts
	default:
		return 0
	}
}

// ScoreTasks scores delivery momentum out of 25. A client with no tasks
// at all sits at a neutral 15. Otherwise completion ratio earns up to 20
// points, a clean slate of zero overdue tasks adds a 5 point bonus, and
// each overdue task costs 3 points up to a cap of 10.
func ScoreTasks(c TaskCounts) int {
	if c.Total == 0 {
		return taskNoWorkPoints
	}

	base := taskCompletionPoints * c.Completed / c.Total
	if c.Overdue == 0 {
		return base + taskOnTimeBonus
	}

	penalty := taskOverduePenaltyStep * c.Overdue
	if penalty > taskOverduePenaltyCap {
		penalty = taskOverduePenaltyCap
	}
	if base < penalty {
		return 0
	}
	return base - penalty
}

// ScoreDigests scores reporting cadence out of 15: 4 points per digest
// sent in the last four weeks, counting at most four of them.
func ScoreDigests(recentCount int) int {
	if recentCount > digestCountCap {
		recentCount = digestCountCap
	}
	points := recentCount * digestPointsPer
	if points > maxDigestPoints {
		points = maxDigestPoints
	}
	return points
}

// ScoreProfitability scores budget consumption out of 20 by comparing
// the estimated month-to-date delivery cost against the monthly budget.
// Without a budget (absent or zero) there is nothing to compare, so the
// factor sits at a neutral 10.
//
//	ratio <= 0.7 -> 20
//	ratio <= 0.9 -> 15
//	ratio <= 1.0 -> 10
//	ratio <= 1.2 -> 5
//	beyond       -> 0
func ScoreProfitability(budget Budget, estimatedCost float64) int {
	amount, ok := budget.Amount()
	if !ok || amount == 0 {
		return profitNoBudgetPts
	}

	switch ratio := estimatedCost / amount; {
	case ratio <= profitComfortRatio:
		return maxProfitabilityPoints
	case ratio <= profitWatchRatio:
		return profitWatchPoints
	case ratio <= profitBreakRatio:
		return profitBreakPoints
	case ratio <= profitOverrunRatio:
		return profitOverrunPoints
	default:
		return 0
	}
}

// ScoreFollowups scores commitment hygiene out of 15. No overdue
// follow-ups is full marks, one or two drops to 8, three or more
// means promises to the client are slipping and scores zero.
func ScoreFollowups(overdueCount int) int {
	switch {
	case overdueCount == 0:
		return maxFollowupPoints
	case overdueCount <= followupGraceCount:
		return followupGracePoints
	default:
		return 0
	}
}
