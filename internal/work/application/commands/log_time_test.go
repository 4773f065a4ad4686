package commands

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddMemberHandler(t *testing.T) {
	repo := new(mockMemberRepo)
	repo.On("FindByEmail", mock.Anything, "dana@pulso.dev").Return(nil, domain.ErrMemberNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Member")).Return(nil)

	rate := 60.0
	handler := NewAddMemberHandler(repo)
	result, err := handler.Handle(context.Background(), AddMemberCommand{
		Name:       "Dana",
		Email:      "Dana@Pulso.dev",
		HourlyRate: &rate,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.MemberID)
	repo.AssertExpectations(t)
}

func TestAddMemberHandler_DuplicateEmail(t *testing.T) {
	existing, _ := domain.NewMember("Dana", "dana@pulso.dev", nil)

	repo := new(mockMemberRepo)
	repo.On("FindByEmail", mock.Anything, "dana@pulso.dev").Return(existing, nil)

	handler := NewAddMemberHandler(repo)
	_, err := handler.Handle(context.Background(), AddMemberCommand{Name: "Dana II", Email: "dana@pulso.dev"})

	assert.ErrorIs(t, err, domain.ErrMemberExists)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLogTimeHandler(t *testing.T) {
	task, _ := domain.NewTask(uuid.New(), "audit", domain.PriorityMedium)
	member, _ := domain.NewMember("Dana", "dana@pulso.dev", nil)

	taskRepo := new(mockTaskRepo)
	taskRepo.On("FindByID", mock.Anything, task.ID()).Return(task, nil)
	memberRepo := new(mockMemberRepo)
	memberRepo.On("FindByID", mock.Anything, member.ID).Return(member, nil)
	entryRepo := new(mockEntryRepo)
	entryRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.TimeEntry")).Return(nil)

	handler := NewLogTimeHandler(taskRepo, memberRepo, entryRepo)
	result, err := handler.Handle(context.Background(), LogTimeCommand{
		TaskID:    task.ID(),
		MemberID:  member.ID,
		Minutes:   90,
		EntryDate: time.Date(2026, 4, 3, 14, 0, 0, 0, time.UTC),
		Note:      "content refresh",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.EntryID)

	saved := entryRepo.Calls[0].Arguments.Get(1).(*domain.TimeEntry)
	assert.Equal(t, 90, saved.Minutes)
	assert.Equal(t, time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), saved.EntryDate)
}

func TestLogTimeHandler_UnknownTask(t *testing.T) {
	taskRepo := new(mockTaskRepo)
	taskRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, domain.ErrTaskNotFound)

	handler := NewLogTimeHandler(taskRepo, new(mockMemberRepo), new(mockEntryRepo))
	_, err := handler.Handle(context.Background(), LogTimeCommand{TaskID: uuid.New(), MemberID: uuid.New(), Minutes: 30})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestLogTimeHandler_UnknownMember(t *testing.T) {
	task, _ := domain.NewTask(uuid.New(), "audit", domain.PriorityMedium)

	taskRepo := new(mockTaskRepo)
	taskRepo.On("FindByID", mock.Anything, task.ID()).Return(task, nil)
	memberRepo := new(mockMemberRepo)
	memberRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, domain.ErrMemberNotFound)
	entryRepo := new(mockEntryRepo)

	handler := NewLogTimeHandler(taskRepo, memberRepo, entryRepo)
	_, err := handler.Handle(context.Background(), LogTimeCommand{TaskID: task.ID(), MemberID: uuid.New(), Minutes: 30})

	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	entryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
