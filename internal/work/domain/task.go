package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/pulso/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrTaskEmptyTitle      = errors.New("task title cannot be empty")
	ErrTaskInvalidPriority = errors.New("invalid task priority")
	ErrTaskCompleted       = errors.New("task is already completed")
	ErrTaskInvalidEstimate = errors.New("estimated minutes must be positive")
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// IsValid checks if the status is valid.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	default:
		return false
	}
}

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid checks if the priority is valid.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Task represents a unit of client work.
type Task struct {
	sharedDomain.BaseEntity
	clientID         uuid.UUID
	title            string
	status           TaskStatus
	priority         Priority
	dueDate          *time.Time
	estimatedMinutes *int
	completedAt      *time.Time
}

// NewTask creates a new pending task for a client.
func NewTask(clientID uuid.UUID, title string, priority Priority) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTaskEmptyTitle
	}

	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, ErrTaskInvalidPriority
	}

	return &Task{
		BaseEntity: sharedDomain.NewBaseEntity(),
		clientID:   clientID,
		title:      title,
		status:     TaskPending,
		priority:   priority,
	}, nil
}

// Getters
func (t *Task) ClientID() uuid.UUID     { return t.clientID }
func (t *Task) Title() string           { return t.title }
func (t *Task) Status() TaskStatus      { return t.status }
func (t *Task) Priority() Priority      { return t.priority }
func (t *Task) DueDate() *time.Time     { return t.dueDate }
func (t *Task) EstimatedMinutes() *int  { return t.estimatedMinutes }
func (t *Task) CompletedAt() *time.Time { return t.completedAt }

// SetDueDate sets or clears the due date.
func (t *Task) SetDueDate(due *time.Time) {
	if due != nil {
		d := due.UTC()
		t.dueDate = &d
	} else {
		t.dueDate = nil
	}
	t.Touch()
}

// SetEstimatedMinutes sets the effort estimate.
func (t *Task) SetEstimatedMinutes(minutes int) error {
	if minutes <= 0 {
		return ErrTaskInvalidEstimate
	}
	t.estimatedMinutes = &minutes
	t.Touch()
	return nil
}

// Start moves a pending task to in_progress. Starting a task that is
// already in progress is a no-op.
func (t *Task) Start() error {
	if t.status == TaskCompleted {
		return ErrTaskCompleted
	}
	if t.status == TaskInProgress {
		return nil
	}
	t.status = TaskInProgress
	t.Touch()
	return nil
}

// Complete marks the task as done.
func (t *Task) Complete(completedAt time.Time) error {
	if t.status == TaskCompleted {
		return ErrTaskCompleted
	}
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}
	completedAt = completedAt.UTC()
	t.status = TaskCompleted
	t.completedAt = &completedAt
	t.Touch()
	return nil
}

// IsOverdue reports whether the task is open and past its due date.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.status != TaskCompleted && t.dueDate != nil && t.dueDate.Before(now)
}

// RehydrateTask recreates a task from persisted state.
func RehydrateTask(
	id uuid.UUID,
	clientID uuid.UUID,
	title string,
	status TaskStatus,
	priority Priority,
	dueDate *time.Time,
	estimatedMinutes *int,
	completedAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *Task {
	return &Task{
		BaseEntity:       sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		clientID:         clientID,
		title:            title,
		status:           status,
		priority:         priority,
		dueDate:          dueDate,
		estimatedMinutes: estimatedMinutes,
		completedAt:      completedAt,
	}
}
