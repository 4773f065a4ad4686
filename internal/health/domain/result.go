package domain

import "github.com/google/uuid"

// RiskLevel classifies a health score into the three operational bands
// the agency plans its week around.
type RiskLevel string

const (
	// RiskHealthy means the relationship needs no special attention.
	RiskHealthy RiskLevel = "healthy"
	// RiskWarning means the account should be reviewed this week.
	RiskWarning RiskLevel = "warning"
	// RiskAtRisk means the account needs intervention now.
	RiskAtRisk RiskLevel = "at_risk"
)

// IsValid checks if the risk level is valid.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskHealthy, RiskWarning, RiskAtRisk:
		return true
	default:
		return false
	}
}

// Classification boundaries: scores of 70 and above are healthy, 40 and
// above are a warning, everything below is at risk.
const (
	healthyThreshold = 70
	warningThreshold = 40
)

// FactorBreakdown carries the per-factor contributions to a health
// score. The five factors sum to at most 100.
type FactorBreakdown struct {
	Communication int `json:"communication"`
	Tasks         int `json:"tasks"`
	Digests       int `json:"digests"`
	Profitability int `json:"profitability"`
	Followups     int `json:"followups"`
}

// Total sums the factor contributions.
func (f FactorBreakdown) Total() int {
	return f.Communication + f.Tasks + f.Digests + f.Profitability + f.Followups
}

// HealthScore is the result of evaluating one client. It is derived
// data, computed on demand and never persisted.
type HealthScore struct {
	ClientID   uuid.UUID       `json:"client_id"`
	ClientName string          `json:"client_name"`
	Score      int             `json:"score"`
	Factors    FactorBreakdown `json:"factors"`
	RiskLevel  RiskLevel       `json:"risk_level"`
}

// NewHealthScore assembles a result from a factor breakdown: the total
// is clamped to [0, 100] and classified into a risk level.
func NewHealthScore(ref ClientRef, factors FactorBreakdown) HealthScore {
	score := factors.Total()
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return HealthScore{
		ClientID:   ref.ID,
		ClientName: ref.Name,
		Score:      score,
		Factors:    factors,
		RiskLevel:  Classify(score),
	}
}

// Classify maps a clamped score to its risk level.
func Classify(score int) RiskLevel {
	switch {
	case score >= healthyThreshold:
		return RiskHealthy
	case score >= warningThreshold:
		return RiskWarning
	default:
		return RiskAtRisk
	}
}
