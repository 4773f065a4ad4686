package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrTimeEntryInvalidMinutes = errors.New("minutes must be positive")

// TimeEntry represents minutes a member spent on a task on a given day.
// Cost attribution runs client ← task ← entry.
type TimeEntry struct {
	ID        uuid.UUID
	TaskID    uuid.UUID
	MemberID  uuid.UUID
	Minutes   int
	EntryDate time.Time
	Note      string

	CreatedAt time.Time
}

// NewTimeEntry logs time against a task.
func NewTimeEntry(taskID, memberID uuid.UUID, minutes int, entryDate time.Time, note string) (*TimeEntry, error) {
	if minutes <= 0 {
		return nil, ErrTimeEntryInvalidMinutes
	}

	now := time.Now().UTC()
	if entryDate.IsZero() {
		entryDate = now
	}
	y, m, d := entryDate.UTC().Date()

	return &TimeEntry{
		ID:        uuid.New(),
		TaskID:    taskID,
		MemberID:  memberID,
		Minutes:   minutes,
		EntryDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Note:      strings.TrimSpace(note),
		CreatedAt: now,
	}, nil
}
