package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
)

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	ClientID         uuid.UUID
	Title            string
	Priority         string
	DueDate          *time.Time
	EstimatedMinutes int
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID uuid.UUID
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo domain.TaskRepository
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo domain.TaskRepository) *CreateTaskHandler {
	return &CreateTaskHandler{taskRepo: taskRepo}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	task, err := domain.NewTask(cmd.ClientID, cmd.Title, domain.Priority(cmd.Priority))
	if err != nil {
		return nil, err
	}

	if cmd.DueDate != nil {
		task.SetDueDate(cmd.DueDate)
	}
	if cmd.EstimatedMinutes > 0 {
		if err := task.SetEstimatedMinutes(cmd.EstimatedMinutes); err != nil {
			return nil, err
		}
	}

	if err := h.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	return &CreateTaskResult{TaskID: task.ID()}, nil
}
