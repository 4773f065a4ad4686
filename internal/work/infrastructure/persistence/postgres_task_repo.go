package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTaskRepository implements domain.TaskRepository using PostgreSQL.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

const pgUpsertTask = `
INSERT INTO tasks (id, client_id, title, status, priority, due_date, estimated_minutes, completed_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title,
	status = EXCLUDED.status,
	priority = EXCLUDED.priority,
	due_date = EXCLUDED.due_date,
	estimated_minutes = EXCLUDED.estimated_minutes,
	completed_at = EXCLUDED.completed_at,
	updated_at = EXCLUDED.updated_at`

// Save persists a task to the database.
func (r *PostgresTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	_, err := r.pool.Exec(ctx, pgUpsertTask,
		task.ID(),
		task.ClientID(),
		task.Title(),
		string(task.Status()),
		string(task.Priority()),
		task.DueDate(),
		task.EstimatedMinutes(),
		task.CompletedAt(),
		task.CreatedAt(),
		task.UpdatedAt(),
	)
	return err
}

const pgSelectTask = `
SELECT id, client_id, title, status, priority, due_date, estimated_minutes, completed_at, created_at, updated_at
FROM tasks`

// FindByID retrieves a task by its ID.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, pgSelectTask+` WHERE id = $1`, id)
	task, err := scanPgTask(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
		}
		return nil, err
	}
	return task, nil
}

// FindByClientID retrieves a client's tasks, newest first.
func (r *PostgresTaskRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, status *domain.TaskStatus) ([]*domain.Task, error) {
	query := pgSelectTask + ` WHERE client_id = $1 ORDER BY created_at DESC`
	args := []any{clientID}
	if status != nil {
		query = pgSelectTask + ` WHERE client_id = $1 AND status = $2 ORDER BY created_at DESC`
		args = append(args, string(*status))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPgTasks(rows)
}

// FindOverdue retrieves open tasks past their due date, most overdue first.
func (r *PostgresTaskRepository) FindOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx, pgSelectTask+`
		WHERE status <> 'completed' AND due_date IS NOT NULL AND due_date < $1
		ORDER BY due_date`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPgTasks(rows)
}

// CountOpenByClient counts a client's non-completed tasks.
func (r *PostgresTaskRepository) CountOpenByClient(ctx context.Context, clientID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tasks WHERE client_id = $1 AND status <> 'completed'`, clientID,
	).Scan(&count)
	return count, err
}

type pgRow interface {
	Scan(dest ...any) error
}

type pgRows interface {
	pgRow
	Next() bool
	Err() error
}

func collectPgTasks(rows pgRows) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanPgTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanPgTask(row pgRow) (*domain.Task, error) {
	var (
		id               uuid.UUID
		clientID         uuid.UUID
		title            string
		status           string
		priority         string
		dueDate          *time.Time
		estimatedMinutes *int
		completedAt      *time.Time
		createdAt        time.Time
		updatedAt        time.Time
	)
	if err := row.Scan(&id, &clientID, &title, &status, &priority, &dueDate, &estimatedMinutes, &completedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return domain.RehydrateTask(
		id, clientID, title,
		domain.TaskStatus(status),
		domain.Priority(priority),
		dueDate, estimatedMinutes, completedAt,
		createdAt, updatedAt,
	), nil
}
