package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInsightEmptyTitle      = errors.New("insight title cannot be empty")
	ErrInsightInvalidType     = errors.New("invalid insight type")
	ErrInsightInvalidPriority = errors.New("invalid insight priority")
	ErrInsightNotActive       = errors.New("insight is no longer active")
)

// InsightType classifies what an operational alert is about.
type InsightType string

const (
	// InsightFollowup flags follow-up promises that are past due.
	InsightFollowup InsightType = "followup"
	// InsightStalled flags clients nobody has talked to recently.
	InsightStalled InsightType = "stalled"
	// InsightOverdue flags overdue tasks dragging delivery down.
	InsightOverdue InsightType = "overdue"
	// InsightWorkload flags budget overruns and open-task pile-ups.
	InsightWorkload InsightType = "workload"
	// InsightSuggestion carries the intervention advice for at-risk clients.
	InsightSuggestion InsightType = "suggestion"
)

// IsValid checks if the insight type is valid.
func (t InsightType) IsValid() bool {
	switch t {
	case InsightFollowup, InsightStalled, InsightOverdue, InsightWorkload, InsightSuggestion:
		return true
	default:
		return false
	}
}

// InsightPriority represents how urgently an insight needs a reaction.
type InsightPriority string

const (
	InsightPriorityHigh   InsightPriority = "high"
	InsightPriorityMedium InsightPriority = "medium"
	InsightPriorityLow    InsightPriority = "low"
)

// IsValid checks if the priority is valid.
func (p InsightPriority) IsValid() bool {
	switch p {
	case InsightPriorityHigh, InsightPriorityMedium, InsightPriorityLow:
		return true
	default:
		return false
	}
}

// InsightStatus represents the handling state of an insight.
type InsightStatus string

const (
	InsightActive    InsightStatus = "active"
	InsightDismissed InsightStatus = "dismissed"
	InsightActed     InsightStatus = "acted"
)

// IsValid checks if the status is valid.
func (s InsightStatus) IsValid() bool {
	switch s {
	case InsightActive, InsightDismissed, InsightActed:
		return true
	default:
		return false
	}
}

// Insight is an operational alert derived from a client's health
// evaluation. Active insights stay on the advisor list until someone
// dismisses them or acts on them.
type Insight struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	Type            InsightType
	Priority        InsightPriority
	Status          InsightStatus
	Title           string
	Detail          string
	SuggestedAction string
	GeneratedAt     time.Time
	DismissedAt     *time.Time
	ActedAt         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewInsight creates a new active insight.
func NewInsight(
	clientID uuid.UUID,
	insightType InsightType,
	priority InsightPriority,
	title, detail, suggestedAction string,
	generatedAt time.Time,
) (*Insight, error) {
	if !insightType.IsValid() {
		return nil, ErrInsightInvalidType
	}
	if !priority.IsValid() {
		return nil, ErrInsightInvalidPriority
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInsightEmptyTitle
	}
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	} else {
		generatedAt = generatedAt.UTC()
	}

	now := time.Now().UTC()
	return &Insight{
		ID:              uuid.New(),
		ClientID:        clientID,
		Type:            insightType,
		Priority:        priority,
		Status:          InsightActive,
		Title:           title,
		Detail:          detail,
		SuggestedAction: suggestedAction,
		GeneratedAt:     generatedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// IsActive reports whether the insight still needs a reaction.
func (i *Insight) IsActive() bool {
	return i.Status == InsightActive
}

// Dismiss marks the insight as not worth acting on.
func (i *Insight) Dismiss() error {
	if i.Status != InsightActive {
		return ErrInsightNotActive
	}
	now := time.Now().UTC()
	i.Status = InsightDismissed
	i.DismissedAt = &now
	i.UpdatedAt = now
	return nil
}

// MarkActed records that somebody handled the underlying problem.
func (i *Insight) MarkActed() error {
	if i.Status != InsightActive {
		return ErrInsightNotActive
	}
	now := time.Now().UTC()
	i.Status = InsightActed
	i.ActedAt = &now
	i.UpdatedAt = now
	return nil
}
