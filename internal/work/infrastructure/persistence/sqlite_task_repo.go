package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
)

// SQLiteTaskRepository implements domain.TaskRepository using SQLite.
type SQLiteTaskRepository struct {
	dbConn *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(dbConn *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{dbConn: dbConn}
}

const sqliteUpsertTask = `
INSERT INTO tasks (id, client_id, title, status, priority, due_date, estimated_minutes, completed_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	status = excluded.status,
	priority = excluded.priority,
	due_date = excluded.due_date,
	estimated_minutes = excluded.estimated_minutes,
	completed_at = excluded.completed_at,
	updated_at = excluded.updated_at`

// Save persists a task to the database.
func (r *SQLiteTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	var estimate sql.NullInt64
	if mins := task.EstimatedMinutes(); mins != nil {
		estimate = sql.NullInt64{Int64: int64(*mins), Valid: true}
	}

	_, err := r.dbConn.ExecContext(ctx, sqliteUpsertTask,
		task.ID().String(),
		task.ClientID().String(),
		task.Title(),
		string(task.Status()),
		string(task.Priority()),
		toNullTime(task.DueDate()),
		estimate,
		toNullTime(task.CompletedAt()),
		task.CreatedAt().UTC().Format(time.RFC3339),
		task.UpdatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

const sqliteSelectTask = `
SELECT id, client_id, title, status, priority, due_date, estimated_minutes, completed_at, created_at, updated_at
FROM tasks`

// FindByID retrieves a task by its ID.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.dbConn.QueryRowContext(ctx, sqliteSelectTask+` WHERE id = ?`, id.String())
	task, err := scanSQLiteTask(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
		}
		return nil, err
	}
	return task, nil
}

// FindByClientID retrieves a client's tasks, newest first.
func (r *SQLiteTaskRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, status *domain.TaskStatus) ([]*domain.Task, error) {
	query := sqliteSelectTask + ` WHERE client_id = ? ORDER BY created_at DESC`
	args := []any{clientID.String()}
	if status != nil {
		query = sqliteSelectTask + ` WHERE client_id = ? AND status = ? ORDER BY created_at DESC`
		args = append(args, string(*status))
	}

	rows, err := r.dbConn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSQLiteTasks(rows)
}

// FindOverdue retrieves open tasks past their due date, most overdue first.
func (r *SQLiteTaskRepository) FindOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	rows, err := r.dbConn.QueryContext(ctx, sqliteSelectTask+`
		WHERE status <> 'completed' AND due_date IS NOT NULL AND due_date < ?
		ORDER BY due_date`, now.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSQLiteTasks(rows)
}

// CountOpenByClient counts a client's non-completed tasks.
func (r *SQLiteTaskRepository) CountOpenByClient(ctx context.Context, clientID uuid.UUID) (int, error) {
	var count int
	err := r.dbConn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE client_id = ? AND status <> 'completed'`, clientID.String(),
	).Scan(&count)
	return count, err
}

type sqliteRow interface {
	Scan(dest ...any) error
}

func collectSQLiteTasks(rows *sql.Rows) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanSQLiteTask(row sqliteRow) (*domain.Task, error) {
	var (
		idStr            string
		clientIDStr      string
		title            string
		status           string
		priority         string
		dueDate          sql.NullString
		estimatedMinutes sql.NullInt64
		completedAt      sql.NullString
		createdAt        string
		updatedAt        string
	)
	if err := row.Scan(&idStr, &clientIDStr, &title, &status, &priority, &dueDate, &estimatedMinutes, &completedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		return nil, err
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, err
	}
	due, err := fromNullTime(dueDate)
	if err != nil {
		return nil, err
	}
	completed, err := fromNullTime(completedAt)
	if err != nil {
		return nil, err
	}

	var estimate *int
	if estimatedMinutes.Valid {
		mins := int(estimatedMinutes.Int64)
		estimate = &mins
	}

	return domain.RehydrateTask(
		id, clientID, title,
		domain.TaskStatus(status),
		domain.Priority(priority),
		due, estimate, completed,
		created, updated,
	), nil
}

// Helper functions
func toNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func fromNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
