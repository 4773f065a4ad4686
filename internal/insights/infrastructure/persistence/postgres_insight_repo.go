package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulso/internal/insights/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresInsightRepository implements domain.InsightRepository using PostgreSQL.
type PostgresInsightRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresInsightRepository creates a new PostgreSQL insight repository.
func NewPostgresInsightRepository(pool *pgxpool.Pool) *PostgresInsightRepository {
	return &PostgresInsightRepository{pool: pool}
}

// Save persists an insight to the database.
func (r *PostgresInsightRepository) Save(ctx context.Context, insight *domain.Insight) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO insights (id, client_id, insight_type, priority, status, title,
			detail, suggested_action, generated_at, dismissed_at, acted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			priority = EXCLUDED.priority,
			status = EXCLUDED.status,
			title = EXCLUDED.title,
			detail = EXCLUDED.detail,
			suggested_action = EXCLUDED.suggested_action,
			dismissed_at = EXCLUDED.dismissed_at,
			acted_at = EXCLUDED.acted_at,
			updated_at = EXCLUDED.updated_at`,
		insight.ID, insight.ClientID, string(insight.Type), string(insight.Priority),
		string(insight.Status), insight.Title, insight.Detail, insight.SuggestedAction,
		insight.GeneratedAt, insight.DismissedAt, insight.ActedAt,
		insight.CreatedAt, insight.UpdatedAt,
	)
	return err
}

const pgSelectInsight = `SELECT id, client_id, insight_type, priority, status, title,
	detail, suggested_action, generated_at, dismissed_at, acted_at, created_at, updated_at
	FROM insights`

// FindByID retrieves an insight by its ID.
func (r *PostgresInsightRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Insight, error) {
	insight, err := scanPgInsight(r.pool.QueryRow(ctx, pgSelectInsight+` WHERE id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInsightNotFound, id)
		}
		return nil, err
	}
	return insight, nil
}

// FindActiveByClientAndType retrieves the active insight of one type for
// a client, used for duplicate suppression during generation.
func (r *PostgresInsightRepository) FindActiveByClientAndType(ctx context.Context, clientID uuid.UUID, insightType domain.InsightType) (*domain.Insight, error) {
	insight, err := scanPgInsight(r.pool.QueryRow(ctx,
		pgSelectInsight+` WHERE client_id = $1 AND insight_type = $2 AND status = 'active'
		ORDER BY generated_at DESC LIMIT 1`,
		clientID, string(insightType)))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrInsightNotFound
		}
		return nil, err
	}
	return insight, nil
}

// List retrieves insights newest first, optionally filtered by client
// and status.
func (r *PostgresInsightRepository) List(ctx context.Context, clientID *uuid.UUID, status *domain.InsightStatus) ([]*domain.Insight, error) {
	conditions := []string{}
	args := []any{}
	if clientID != nil {
		args = append(args, *clientID)
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if status != nil {
		args = append(args, string(*status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := pgSelectInsight
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY generated_at DESC, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	insights := make([]*domain.Insight, 0)
	for rows.Next() {
		insight, err := scanPgInsight(rows)
		if err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}
	return insights, rows.Err()
}

type pgRow interface {
	Scan(dest ...any) error
}

func scanPgInsight(row pgRow) (*domain.Insight, error) {
	var (
		insight     domain.Insight
		insightType string
		priority    string
		status      string
	)
	if err := row.Scan(
		&insight.ID, &insight.ClientID, &insightType, &priority, &status,
		&insight.Title, &insight.Detail, &insight.SuggestedAction,
		&insight.GeneratedAt, &insight.DismissedAt, &insight.ActedAt,
		&insight.CreatedAt, &insight.UpdatedAt,
	); err != nil {
		return nil, err
	}

	insight.Type = domain.InsightType(insightType)
	insight.Priority = domain.InsightPriority(priority)
	insight.Status = domain.InsightStatus(status)
	return &insight, nil
}
