package queries

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
)

// ErrUnscopedTaskList is returned when neither a client nor the overdue
// filter scopes the listing.
var ErrUnscopedTaskList = errors.New("task listing requires a client or the overdue filter")

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID               uuid.UUID
	ClientID         uuid.UUID
	Title            string
	Status           string
	Priority         string
	DueDate          *time.Time
	EstimatedMinutes *int
	CompletedAt      *time.Time
	Overdue          bool
	CreatedAt        time.Time
}

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	// ClientID scopes the listing to one client when set.
	ClientID *uuid.UUID
	// Status filters by task status when non-empty.
	Status string
	// OnlyOverdue lists open tasks past their due date across all clients.
	OnlyOverdue bool
	// Now defaults to the current time when zero.
	Now time.Time
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo domain.TaskRepository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo domain.TaskRepository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var tasks []*domain.Task
	var err error

	switch {
	case query.OnlyOverdue:
		tasks, err = h.taskRepo.FindOverdue(ctx, now)
	case query.ClientID != nil:
		var status *domain.TaskStatus
		if query.Status != "" {
			s := domain.TaskStatus(query.Status)
			status = &s
		}
		tasks, err = h.taskRepo.FindByClientID(ctx, *query.ClientID, status)
	default:
		return nil, ErrUnscopedTaskList
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = TaskDTO{
			ID:               t.ID(),
			ClientID:         t.ClientID(),
			Title:            t.Title(),
			Status:           string(t.Status()),
			Priority:         string(t.Priority()),
			DueDate:          t.DueDate(),
			EstimatedMinutes: t.EstimatedMinutes(),
			CompletedAt:      t.CompletedAt(),
			Overdue:          t.IsOverdue(now),
			CreatedAt:        t.CreatedAt(),
		}
	}
	return dtos, nil
}
