package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
)

// LogTimeCommand records minutes a member spent on a task.
type LogTimeCommand struct {
	TaskID   uuid.UUID
	MemberID uuid.UUID
	Minutes  int
	// EntryDate defaults to today when zero.
	EntryDate time.Time
	Note      string
}

// LogTimeResult contains the result of logging time.
type LogTimeResult struct {
	EntryID uuid.UUID
}

// LogTimeHandler handles the LogTimeCommand.
type LogTimeHandler struct {
	taskRepo   domain.TaskRepository
	memberRepo domain.MemberRepository
	entryRepo  domain.TimeEntryRepository
}

// NewLogTimeHandler creates a new LogTimeHandler.
func NewLogTimeHandler(taskRepo domain.TaskRepository, memberRepo domain.MemberRepository, entryRepo domain.TimeEntryRepository) *LogTimeHandler {
	return &LogTimeHandler{taskRepo: taskRepo, memberRepo: memberRepo, entryRepo: entryRepo}
}

// Handle executes the LogTimeCommand.
func (h *LogTimeHandler) Handle(ctx context.Context, cmd LogTimeCommand) (*LogTimeResult, error) {
	if _, err := h.taskRepo.FindByID(ctx, cmd.TaskID); err != nil {
		return nil, err
	}
	if _, err := h.memberRepo.FindByID(ctx, cmd.MemberID); err != nil {
		return nil, err
	}

	entry, err := domain.NewTimeEntry(cmd.TaskID, cmd.MemberID, cmd.Minutes, cmd.EntryDate, cmd.Note)
	if err != nil {
		return nil, err
	}

	if err := h.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	return &LogTimeResult{EntryID: entry.ID}, nil
}
