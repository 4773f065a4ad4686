package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberExists   = errors.New("member email already registered")
)

// TaskRepository defines the interface for task persistence.
type TaskRepository interface {
	// Save persists a task (create or update).
	Save(ctx context.Context, task *Task) error

	// FindByID finds a task by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)

	// FindByClientID returns a client's tasks, optionally filtered by
	// status, newest first.
	FindByClientID(ctx context.Context, clientID uuid.UUID, status *TaskStatus) ([]*Task, error)

	// FindOverdue returns open tasks past their due date across all
	// clients, most overdue first.
	FindOverdue(ctx context.Context, now time.Time) ([]*Task, error)

	// CountOpenByClient counts a client's non-completed tasks.
	CountOpenByClient(ctx context.Context, clientID uuid.UUID) (int, error)
}

// MemberRepository defines the interface for member persistence.
type MemberRepository interface {
	// Save persists a member (create or update).
	Save(ctx context.Context, member *Member) error

	// FindByID finds a member by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)

	// FindByEmail finds a member by email.
	FindByEmail(ctx context.Context, email string) (*Member, error)

	// List returns all members ordered by name.
	List(ctx context.Context) ([]*Member, error)
}

// TimeEntryRepository defines the interface for time entry persistence.
type TimeEntryRepository interface {
	// Save persists a time entry.
	Save(ctx context.Context, entry *TimeEntry) error

	// FindByTaskID returns a task's entries, newest first.
	FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*TimeEntry, error)
}
