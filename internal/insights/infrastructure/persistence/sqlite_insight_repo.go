package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/pulso/internal/insights/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLiteInsightRepository implements domain.InsightRepository using SQLite.
type SQLiteInsightRepository struct {
	dbConn *sql.DB
}

// NewSQLiteInsightRepository creates a new SQLite insight repository.
func NewSQLiteInsightRepository(dbConn *sql.DB) *SQLiteInsightRepository {
	return &SQLiteInsightRepository{dbConn: dbConn}
}

// Save persists an insight to the database.
func (r *SQLiteInsightRepository) Save(ctx context.Context, insight *domain.Insight) error {
	_, err := r.dbConn.ExecContext(ctx, `
		INSERT INTO insights (id, client_id, insight_type, priority, status, title,
			detail, suggested_action, generated_at, dismissed_at, acted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			priority = excluded.priority,
			status = excluded.status,
			title = excluded.title,
			detail = excluded.detail,
			suggested_action = excluded.suggested_action,
			dismissed_at = excluded.dismissed_at,
			acted_at = excluded.acted_at,
			updated_at = excluded.updated_at`,
		insight.ID.String(), insight.ClientID.String(), string(insight.Type),
		string(insight.Priority), string(insight.Status), insight.Title,
		insight.Detail, insight.SuggestedAction,
		insight.GeneratedAt.UTC().Format(time.RFC3339),
		toNullTime(insight.DismissedAt), toNullTime(insight.ActedAt),
		insight.CreatedAt.UTC().Format(time.RFC3339),
		insight.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

const sqliteSelectInsight = `SELECT id, client_id, insight_type, priority, status, title,
	detail, suggested_action, generated_at, dismissed_at, acted_at, created_at, updated_at
	FROM insights`

// FindByID retrieves an insight by its ID.
func (r *SQLiteInsightRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Insight, error) {
	insight, err := scanSQLiteInsight(r.dbConn.QueryRowContext(ctx, sqliteSelectInsight+` WHERE id = ?`, id.String()))
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
func (r *SQLiteInsightRepository) FindActiveByClientAndType(ctx context.Context, clientID uuid.UUID, insightType domain.InsightType) (*domain.Insight, error) {
	insight, err := scanSQLiteInsight(r.dbConn.QueryRowContext(ctx,
		sqliteSelectInsight+` WHERE client_id = ? AND insight_type = ? AND status = 'active'
		ORDER BY generated_at DESC LIMIT 1`,
		clientID.String(), string(insightType)))
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
func (r *SQLiteInsightRepository) List(ctx context.Context, clientID *uuid.UUID, status *domain.InsightStatus) ([]*domain.Insight, error) {
	conditions := []string{}
	args := []any{}
	if clientID != nil {
		conditions = append(conditions, "client_id = ?")
		args = append(args, clientID.String())
	}
	if status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*status))
	}

	query := sqliteSelectInsight
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY generated_at DESC, id`

	rows, err := r.dbConn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	insights := make([]*domain.Insight, 0)
	for rows.Next() {
		insight, err := scanSQLiteInsight(rows)
		if err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}
	return insights, rows.Err()
}

type sqliteRow interface {
	Scan(dest ...any) error
}

func toNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func fromNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanSQLiteInsight(row sqliteRow) (*domain.Insight, error) {
	var (
		idStr           string
		clientIDStr     string
		insightType     string
		priority        string
		status          string
		title           string
		detail          string
		suggestedAction string
		generatedAt     string
		dismissedAt     sql.NullString
		actedAt         sql.NullString
		createdAt       string
		updatedAt       string
	)
	if err := row.Scan(&idStr, &clientIDStr, &insightType, &priority, &status,
		&title, &detail, &suggestedAction, &generatedAt, &dismissedAt, &actedAt,
		&createdAt, &updatedAt); err != nil {
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
	generated, err := time.Parse(time.RFC3339, generatedAt)
	if err != nil {
		return nil, err
	}
	dismissed, err := fromNullTime(dismissedAt)
	if err != nil {
		return nil, err
	}
	acted, err := fromNullTime(actedAt)
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

	return &domain.Insight{
		ID:              id,
		ClientID:        clientID,
		Type:            domain.InsightType(insightType),
		Priority:        domain.InsightPriority(priority),
		Status:          domain.InsightStatus(status),
		Title:           title,
		Detail:          detail,
		SuggestedAction: suggestedAction,
		GeneratedAt:     generated,
		DismissedAt:     dismissed,
		ActedAt:         acted,
		CreatedAt:       created,
		UpdatedAt:       updated,
	}, nil
}
