package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/pulso/internal/billing/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBillingEventRepository implements domain.BillingEventRepository
// using PostgreSQL.
type PostgresBillingEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBillingEventRepository creates a new PostgreSQL billing
// event repository.
func NewPostgresBillingEventRepository(pool *pgxpool.Pool) *PostgresBillingEventRepository {
	return &PostgresBillingEventRepository{pool: pool}
}

// Save appends a billing event. The journal is immutable, so this is a
// plain insert.
func (r *PostgresBillingEventRepository) Save(ctx context.Context, event *domain.BillingEvent) error {
	var description *string
	if event.Description != "" {
		description = &event.Description
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO billing_events (id, client_id, event_type, amount, event_date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.ClientID, string(event.Type), event.Amount,
		event.EventDate, description, event.CreatedAt,
	)
	return err
}

const pgSelectBillingEvent = `SELECT id, client_id, event_type, amount, event_date, description, created_at
	FROM billing_events`

// FindByID retrieves a billing event by its ID.
func (r *PostgresBillingEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.BillingEvent, error) {
	event, err := scanPgBillingEvent(r.pool.QueryRow(ctx, pgSelectBillingEvent+` WHERE id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrBillingEventNotFound, id)
		}
		return nil, err
	}
	return event, nil
}

// FindByClientID retrieves a client's billing events, most recent event
// date first.
func (r *PostgresBillingEventRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, limit int) ([]*domain.BillingEvent, error) {
	query := pgSelectBillingEvent + ` WHERE client_id = $1 ORDER BY event_date DESC, created_at DESC, id`
	args := []any{clientID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.BillingEvent, 0)
	for rows.Next() {
		event, err := scanPgBillingEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

type pgRow interface {
	Scan(dest ...any) error
}

func scanPgBillingEvent(row pgRow) (*domain.BillingEvent, error) {
	var (
		event       domain.BillingEvent
		eventType   string
		description *string
	)
	if err := row.Scan(&event.ID, &event.ClientID, &eventType, &event.Amount,
		&event.EventDate, &description, &event.CreatedAt); err != nil {
		return nil, err
	}

	event.Type = domain.EventType(eventType)
	if description != nil {
		event.Description = *description
	}
	event.EventDate = event.EventDate.UTC()
	return &event, nil
}
