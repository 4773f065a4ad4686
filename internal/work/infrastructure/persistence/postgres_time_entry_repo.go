package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTimeEntryRepository implements domain.TimeEntryRepository using PostgreSQL.
type PostgresTimeEntryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTimeEntryRepository creates a new PostgreSQL time entry repository.
func NewPostgresTimeEntryRepository(pool *pgxpool.Pool) *PostgresTimeEntryRepository {
	return &PostgresTimeEntryRepository{pool: pool}
}

// Save persists a time entry.
func (r *PostgresTimeEntryRepository) Save(ctx context.Context, entry *domain.TimeEntry) error {
	var note *string
	if entry.Note != "" {
		note = &entry.Note
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO time_entries (id, task_id, member_id, minutes, entry_date, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.TaskID, entry.MemberID, entry.Minutes, entry.EntryDate, note, entry.CreatedAt,
	)
	return err
}

// FindByTaskID retrieves a task's entries, newest first.
func (r *PostgresTimeEntryRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.TimeEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, task_id, member_id, minutes, entry_date, note, created_at
		FROM time_entries WHERE task_id = $1
		ORDER BY entry_date DESC, created_at DESC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.TimeEntry, 0)
	for rows.Next() {
		var (
			entry domain.TimeEntry
			note  *string
			date  time.Time
		)
		if err := rows.Scan(&entry.ID, &entry.TaskID, &entry.MemberID, &entry.Minutes, &date, &note, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.EntryDate = date.UTC()
		if note != nil {
			entry.Note = *note
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
