package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
)

// CompleteTaskCommand marks a task as done.
type CompleteTaskCommand struct {
	TaskID uuid.UUID
	// CompletedAt defaults to now when zero.
	CompletedAt time.Time
}

// CompleteTaskHandler handles the CompleteTaskCommand.
type CompleteTaskHandler struct {
	taskRepo domain.TaskRepository
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler.
func NewCompleteTaskHandler(taskRepo domain.TaskRepository) *CompleteTaskHandler {
	return &CompleteTaskHandler{taskRepo: taskRepo}
}

// Handle executes the CompleteTaskCommand.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) error {
	task, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}

	if err := task.Complete(cmd.CompletedAt); err != nil {
		return err
	}

	return h.taskRepo.Save(ctx, task)
}
