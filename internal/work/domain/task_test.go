package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	clientID := uuid.New()
	task, err := NewTask(clientID, "Publish quarterly report", PriorityHigh)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, task.ID())
	assert.Equal(t, clientID, task.ClientID())
	assert.Equal(t, "Publish quarterly report", task.Title())
	assert.Equal(t, TaskPending, task.Status())
	assert.Equal(t, PriorityHigh, task.Priority())
	assert.Nil(t, task.DueDate())
	assert.Nil(t, task.CompletedAt())
}

func TestNewTask_EmptyTitle(t *testing.T) {
	_, err := NewTask(uuid.New(), "   ", PriorityMedium)
	assert.ErrorIs(t, err, ErrTaskEmptyTitle)
}

func TestNewTask_DefaultsPriority(t *testing.T) {
	task, err := NewTask(uuid.New(), "write brief", "")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, task.Priority())
}

func TestNewTask_InvalidPriority(t *testing.T) {
	_, err := NewTask(uuid.New(), "write brief", Priority("critical"))
	assert.ErrorIs(t, err, ErrTaskInvalidPriority)
}

func TestTask_StartAndComplete(t *testing.T) {
	task, _ := NewTask(uuid.New(), "audit", PriorityMedium)

	require.NoError(t, task.Start())
	assert.Equal(t, TaskInProgress, task.Status())

	require.NoError(t, task.Start(), "starting twice is a no-op")
	assert.Equal(t, TaskInProgress, task.Status())

	done := time.Date(2026, 4, 2, 16, 0, 0, 0, time.UTC)
	require.NoError(t, task.Complete(done))
	assert.Equal(t, TaskCompleted, task.Status())
	require.NotNil(t, task.CompletedAt())
	assert.Equal(t, done, *task.CompletedAt())

	assert.ErrorIs(t, task.Complete(done), ErrTaskCompleted)
	assert.ErrorIs(t, task.Start(), ErrTaskCompleted)
}

func TestTask_CompleteFromPending(t *testing.T) {
	task, _ := NewTask(uuid.New(), "quick fix", PriorityLow)
	require.NoError(t, task.Complete(time.Time{}))
	assert.Equal(t, TaskCompleted, task.Status())
	assert.NotNil(t, task.CompletedAt())
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	task, _ := NewTask(uuid.New(), "deliverable", PriorityUrgent)

	assert.False(t, task.IsOverdue(now), "no due date")

	past := now.AddDate(0, 0, -2)
	task.SetDueDate(&past)
	assert.True(t, task.IsOverdue(now))

	future := now.AddDate(0, 0, 2)
	task.SetDueDate(&future)
	assert.False(t, task.IsOverdue(now))

	task.SetDueDate(&past)
	require.NoError(t, task.Complete(now))
	assert.False(t, task.IsOverdue(now), "completed tasks are never overdue")
}

func TestTask_SetEstimatedMinutes(t *testing.T) {
	task, _ := NewTask(uuid.New(), "estimate me", PriorityMedium)

	require.NoError(t, task.SetEstimatedMinutes(90))
	require.NotNil(t, task.EstimatedMinutes())
	assert.Equal(t, 90, *task.EstimatedMinutes())

	assert.ErrorIs(t, task.SetEstimatedMinutes(0), ErrTaskInvalidEstimate)
	assert.ErrorIs(t, task.SetEstimatedMinutes(-5), ErrTaskInvalidEstimate)
}

func TestNewMember(t *testing.T) {
	rate := 55.0
	member, err := NewMember("Dana", "  Dana@Pulso.dev ", &rate)

	require.NoError(t, err)
	assert.Equal(t, "Dana", member.Name)
	assert.Equal(t, "dana@pulso.dev", member.Email, "emails are normalized")
	require.NotNil(t, member.HourlyRate)
	assert.Equal(t, 55.0, *member.HourlyRate)

	_, err = NewMember("", "x@y.z", nil)
	assert.ErrorIs(t, err, ErrMemberEmptyName)

	_, err = NewMember("Dana", "  ", nil)
	assert.ErrorIs(t, err, ErrMemberEmptyEmail)

	negative := -1.0
	_, err = NewMember("Dana", "x@y.z", &negative)
	assert.ErrorIs(t, err, ErrMemberNegativeRate)
}

func TestNewTimeEntry(t *testing.T) {
	taskID := uuid.New()
	memberID := uuid.New()
	when := time.Date(2026, 4, 3, 18, 45, 12, 0, time.UTC)

	entry, err := NewTimeEntry(taskID, memberID, 45, when, " keyword research ")

	require.NoError(t, err)
	assert.Equal(t, taskID, entry.TaskID)
	assert.Equal(t, 45, entry.Minutes)
	assert.Equal(t, time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), entry.EntryDate, "entry date is day-granular")
	assert.Equal(t, "keyword research", entry.Note)

	_, err = NewTimeEntry(taskID, memberID, 0, when, "")
	assert.ErrorIs(t, err, ErrTimeEntryInvalidMinutes)
}
