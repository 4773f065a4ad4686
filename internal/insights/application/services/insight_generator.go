package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	healthDomain "github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/felixgeelhaar/pulso/internal/insights/domain"
	"github.com/felixgeelhaar/pulso/pkg/observability"
	"github.com/google/uuid"
)

// ClientReport pairs one client's health evaluation with the signals
// behind it. The factors say how bad things are, the signals say what
// exactly is wrong.
type ClientReport struct {
	Score   healthDomain.HealthScore
	Signals healthDomain.Signals
}

// InsightGenerator derives operational alerts from health evaluations.
// Each rule maps one kind of trouble to one insight type; a client
// with an active insight of a type is skipped until that insight is
// dismissed or acted on, so repeated sweeps do not stack duplicates.
type InsightGenerator struct {
	insightRepo domain.InsightRepository
	thresholds  domain.AlertThresholds
	logger      *slog.Logger
	metrics     observability.Metrics
}

// NewInsightGenerator creates a new insight generator.
func NewInsightGenerator(
	insightRepo domain.InsightRepository,
	thresholds domain.AlertThresholds,
	logger *slog.Logger,
	metrics observability.Metrics,
) *InsightGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &InsightGenerator{
		insightRepo: insightRepo,
		thresholds:  thresholds.Normalized(),
		logger:      logger,
		metrics:     metrics,
	}
}

// GenerationResult contains the outcome of one generation run.
type GenerationResult struct {
	Generated        int
	SkippedDuplicate int
	Insights         []*domain.Insight
}

// Generate applies every rule to every reported client and persists
// the insights that fire.
func (g *InsightGenerator) Generate(ctx context.Context, reports []ClientReport, now time.Time) (*GenerationResult, error) {
	result := &GenerationResult{Insights: []*domain.Insight{}}
	now = now.UTC()

	for _, report := range reports {
		candidates := []*domain.Insight{
			g.followupInsight(report, now),
			g.stalledInsight(report, now),
			g.overdueInsight(report, now),
			g.workloadInsight(report, now),
			g.suggestionInsight(report, now),
		}
		for _, insight := range candidates {
			if insight == nil {
				continue
			}
			if err := g.save(ctx, insight, result); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// followupInsight fires when follow-up promises are past due.
func (g *InsightGenerator) followupInsight(report ClientReport, now time.Time) *domain.Insight {
	count := report.Signals.OverdueFollowups
	if count == 0 {
		return nil
	}

	priority := priorityFor(report.Score.RiskLevel)
	if report.Score.Factors.Followups == 0 {
		priority = domain.InsightPriorityHigh
	}

	return g.newInsight(
		report.Score.ClientID,
		domain.InsightFollowup,
		priority,
		fmt.Sprintf("Follow-ups slipping with %s", report.Score.ClientName),
		fmt.Sprintf("%d promised follow-ups are past due.", count),
		"Clear the overdue follow-ups or move their due dates.",
		now,
	)
}

// stalledInsight fires when nobody has talked to the client recently.
func (g *InsightGenerator) stalledInsight(report ClientReport, now time.Time) *domain.Insight {
	days := healthDomain.DaysSince(report.Signals.LastContactAt, now)
	priority := priorityFor(report.Score.RiskLevel)

	var detail string
	switch {
	case days == nil:
		detail = "No contact has ever been logged."
	case *days < g.thresholds.DaysWithoutContact:
		return nil
	default:
		detail = fmt.Sprintf("No contact logged in %d days.", *days)
		if *days >= g.thresholds.DaysWithoutActivity {
			priority = domain.InsightPriorityHigh
		}
	}

	return g.newInsight(
		report.Score.ClientID,
		domain.InsightStalled,
		priority,
		fmt.Sprintf("%s has gone quiet", report.Score.ClientName),
		detail,
		"Schedule a check-in call or send a status update.",
		now,
	)
}

// overdueInsight fires when overdue tasks drag the delivery factor.
func (g *InsightGenerator) overdueInsight(report ClientReport, now time.Time) *domain.Insight {
	count := report.Signals.Tasks.Overdue
	if count == 0 {
		return nil
	}

	priority := priorityFor(report.Score.RiskLevel)
	if report.Score.Factors.Tasks == 0 {
		priority = domain.InsightPriorityHigh
	}

	return g.newInsight(
		report.Score.ClientID,
		domain.InsightOverdue,
		priority,
		fmt.Sprintf("Overdue tasks piling up for %s", report.Score.ClientName),
		fmt.Sprintf("%d tasks are past their due date.", count),
		"Complete or reschedule the overdue tasks; drop due dates that no longer hold.",
		now,
	)
}

// workloadInsight fires on budget overruns and open-task pile-ups. A
// profitability factor of zero means the month-to-date cost has passed
// 120% of a configured budget.
func (g *InsightGenerator) workloadInsight(report ClientReport, now time.Time) *domain.Insight {
	open := report.Signals.Tasks.Total - report.Signals.Tasks.Completed
	overrun := report.Score.Factors.Profitability == 0

	var detail string
	switch {
	case overrun:
		amount, _ := report.Signals.Budget.Amount()
		detail = fmt.Sprintf("Estimated delivery cost %.0f has overrun the monthly budget of %.0f.",
			report.Signals.EstimatedCost, amount)
	case open > g.thresholds.MaxOpenTasks:
		detail = fmt.Sprintf("%d tasks are open at once; the comfortable limit is %d.",
			open, g.thresholds.MaxOpenTasks)
	default:
		return nil
	}

	return g.newInsight(
		report.Score.ClientID,
		domain.InsightWorkload,
		priorityFor(report.Score.RiskLevel),
		fmt.Sprintf("Workload out of balance at %s", report.Score.ClientName),
		detail,
		"Rebalance the engagement: close out stale tasks or renegotiate scope.",
		now,
	)
}

// suggestionInsight carries the intervention advice for at-risk clients.
func (g *InsightGenerator) suggestionInsight(report ClientReport, now time.Time) *domain.Insight {
	if report.Score.RiskLevel != healthDomain.RiskAtRisk {
		return nil
	}

	area, action := g.weakestArea(report.Score.Factors)

	return g.newInsight(
		report.Score.ClientID,
		domain.InsightSuggestion,
		domain.InsightPriorityHigh,
		fmt.Sprintf("%s needs attention", report.Score.ClientName),
		fmt.Sprintf("Health score is %d with %s as the weakest area.", report.Score.Score, area),
		action,
		now,
	)
}

// weakestArea names the factor with the fewest points and the move
// that recovers it fastest. Ties go to the earlier area, which lists
// the heavier factors first.
func (g *InsightGenerator) weakestArea(f healthDomain.FactorBreakdown) (string, string) {
	type area struct {
		name   string
		points int
		action string
	}
	areas := []area{
		{"communication", f.Communication, "Book a call; the relationship has gone cold."},
		{"delivery", f.Tasks, fmt.Sprintf("Triage the pipeline; anything due inside %d days goes first.", g.thresholds.DaysBeforeDeadline)},
		{"profitability", f.Profitability, "Review scope against budget before more hours are logged."},
		{"reporting", f.Digests, "Send a weekly digest; the client has not seen progress lately."},
		{"follow-ups", f.Followups, "Clear the follow-up backlog before the client notices."},
	}

	weakest := areas[0]
	for _, a := range areas[1:] {
		if a.points < weakest.points {
			weakest = a
		}
	}
	return weakest.name, weakest.action
}

// newInsight builds an insight, logging instead of failing when the
// rule produced invalid content.
func (g *InsightGenerator) newInsight(
	clientID uuid.UUID,
	insightType domain.InsightType,
	priority domain.InsightPriority,
	title, detail, action string,
	now time.Time,
) *domain.Insight {
	insight, err := domain.NewInsight(clientID, insightType, priority, title, detail, action, now)
	if err != nil {
		g.logger.Error("failed to build insight",
			"client_id", clientID, "type", insightType, "error", err)
		return nil
	}
	return insight
}

// save persists an insight unless the client already has an active one
// of the same type.
func (g *InsightGenerator) save(ctx context.Context, insight *domain.Insight, result *GenerationResult) error {
	_, err := g.insightRepo.FindActiveByClientAndType(ctx, insight.ClientID, insight.Type)
	if err == nil {
		result.SkippedDuplicate++
		return nil
	}
	if !errors.Is(err, domain.ErrInsightNotFound) {
		return fmt.Errorf("check existing %s insight: %w", insight.Type, err)
	}

	if err := g.insightRepo.Save(ctx, insight); err != nil {
		return fmt.Errorf("save %s insight: %w", insight.Type, err)
	}

	result.Generated++
	result.Insights = append(result.Insights, insight)

	g.metrics.Counter(observability.MetricInsightsGenerated, 1,
		observability.T("type", string(insight.Type)))
	g.logger.Info("insight generated",
		"client_id", insight.ClientID,
		"type", insight.Type,
		"priority", insight.Priority,
		"title", insight.Title,
	)

	return nil
}

// priorityFor maps the client's risk band to an insight priority.
func priorityFor(level healthDomain.RiskLevel) domain.InsightPriority {
	switch level {
	case healthDomain.RiskAtRisk:
		return domain.InsightPriorityHigh
	case healthDomain.RiskWarning:
		return domain.InsightPriorityMedium
	default:
		return domain.InsightPriorityLow
	}
}
