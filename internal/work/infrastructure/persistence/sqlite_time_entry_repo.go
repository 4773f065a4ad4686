package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
)

const sqliteDateFormat = "2006-01-02"

// SQLiteTimeEntryRepository implements domain.TimeEntryRepository using SQLite.
type SQLiteTimeEntryRepository struct {
	dbConn *sql.DB
}

// NewSQLiteTimeEntryRepository creates a new SQLite time entry repository.
func NewSQLiteTimeEntryRepository(dbConn *sql.DB) *SQLiteTimeEntryRepository {
	return &SQLiteTimeEntryRepository{dbConn: dbConn}
}

// Save persists a time entry.
func (r *SQLiteTimeEntryRepository) Save(ctx context.Context, entry *domain.TimeEntry) error {
	_, err := r.dbConn.ExecContext(ctx, `
		INSERT INTO time_entries (id, task_id, member_id, minutes, entry_date, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID.String(),
		entry.TaskID.String(),
		entry.MemberID.String(),
		entry.Minutes,
		entry.EntryDate.UTC().Format(sqliteDateFormat),
		toNullString(entry.Note),
		entry.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// FindByTaskID retrieves a task's entries, newest first.
func (r *SQLiteTimeEntryRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.TimeEntry, error) {
	rows, err := r.dbConn.QueryContext(ctx, `
		SELECT id, task_id, member_id, minutes, entry_date, note, created_at
		FROM time_entries WHERE task_id = ?
		ORDER BY entry_date DESC, created_at DESC`, taskID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.TimeEntry, 0)
	for rows.Next() {
		var (
			idStr       string
			taskIDStr   string
			memberIDStr string
			minutes     int
			dateStr     string
			note        sql.NullString
			createdAt   string
		)
		if err := rows.Scan(&idStr, &taskIDStr, &memberIDStr, &minutes, &dateStr, &note, &createdAt); err != nil {
			return nil, err
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, err
		}
		tid, err := uuid.Parse(taskIDStr)
		if err != nil {
			return nil, err
		}
		mid, err := uuid.Parse(memberIDStr)
		if err != nil {
			return nil, err
		}
		date, err := time.Parse(sqliteDateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		created, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, err
		}

		entries = append(entries, &domain.TimeEntry{
			ID:        id,
			TaskID:    tid,
			MemberID:  mid,
			Minutes:   minutes,
			EntryDate: date,
			Note:      fromNullString(note),
			CreatedAt: created,
		})
	}
	return entries, rows.Err()
}

// Helper functions
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}
