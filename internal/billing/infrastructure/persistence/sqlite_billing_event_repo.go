package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulso/internal/billing/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const sqliteDateFormat = "2006-01-02"

// SQLiteBillingEventRepository implements domain.BillingEventRepository
// using SQLite.
type SQLiteBillingEventRepository struct {
	dbConn *sql.DB
}

// NewSQLiteBillingEventRepository creates a new SQLite billing event
// repository.
func NewSQLiteBillingEventRepository(dbConn *sql.DB) *SQLiteBillingEventRepository {
	return &SQLiteBillingEventRepository{dbConn: dbConn}
}

// Save appends a billing event. The journal is immutable, so this is a
// plain insert.
func (r *SQLiteBillingEventRepository) Save(ctx context.Context, event *domain.BillingEvent) error {
	var amount sql.NullFloat64
	if event.Amount != nil {
		amount = sql.NullFloat64{Float64: *event.Amount, Valid: true}
	}
	var description sql.NullString
	if event.Description != "" {
		description = sql.NullString{String: event.Description, Valid: true}
	}

	_, err := r.dbConn.ExecContext(ctx, `
		INSERT INTO billing_events (id, client_id, event_type, amount, event_date, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID.String(), event.ClientID.String(), string(event.Type), amount,
		event.EventDate.UTC().Format(sqliteDateFormat), description,
		event.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

const sqliteSelectBillingEvent = `SELECT id, client_id, event_type, amount, event_date, description, created_at
	FROM billing_events`

// FindByID retrieves a billing event by its ID.
func (r *SQLiteBillingEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.BillingEvent, error) {
	event, err := scanSQLiteBillingEvent(r.dbConn.QueryRowContext(ctx, sqliteSelectBillingEvent+` WHERE id = ?`, id.String()))
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
func (r *SQLiteBillingEventRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, limit int) ([]*domain.BillingEvent, error) {
	query := sqliteSelectBillingEvent + ` WHERE client_id = ? ORDER BY event_date DESC, created_at DESC, id`
	args := []any{clientID.String()}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.dbConn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.BillingEvent, 0)
	for rows.Next() {
		event, err := scanSQLiteBillingEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

type sqliteRow interface {
	Scan(dest ...any) error
}

func scanSQLiteBillingEvent(row sqliteRow) (*domain.BillingEvent, error) {
	var (
		idStr       string
		clientIDStr string
		eventType   string
		amount      sql.NullFloat64
		eventDate   string
		description sql.NullString
		createdAt   string
	)
	if err := row.Scan(&idStr, &clientIDStr, &eventType, &amount, &eventDate,
		&description, &createdAt); err != nil {
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
	day, err := time.Parse(sqliteDateFormat, eventDate)
	if err != nil {
		return nil, err
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, err
	}

	event := &domain.BillingEvent{
		ID:        id,
		ClientID:  clientID,
		Type:      domain.EventType(eventType),
		EventDate: day,
		CreatedAt: created,
	}
	if amount.Valid {
		event.Amount = &amount.Float64
	}
	if description.Valid {
		event.Description = description.String
	}
	return event, nil
}
