package commands

import (
	"context"

	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
)

// StartTaskCommand moves a task to in_progress.
type StartTaskCommand struct {
	TaskID uuid.UUID
}

// StartTaskHandler handles the StartTaskCommand.
type StartTaskHandler struct {
	taskRepo domain.TaskRepository
}

// NewStartTaskHandler creates a new StartTaskHandler.
func NewStartTaskHandler(taskRepo domain.TaskRepository) *StartTaskHandler {
	return &StartTaskHandler{taskRepo: taskRepo}
}

// Handle executes the StartTaskCommand.
func (h *StartTaskHandler) Handle(ctx context.Context, cmd StartTaskCommand) error {
	task, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}

	if err := task.Start(); err != nil {
		return err
	}

	return h.taskRepo.Save(ctx, task)
}
