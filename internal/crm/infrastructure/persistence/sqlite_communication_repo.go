package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLiteCommunicationRepository implements domain.CommunicationRepository
// using SQLite.
type SQLiteCommunicationRepository struct {
	dbConn *sql.DB
}

// NewSQLiteCommunicationRepository creates a new SQLite communication repository.
func NewSQLiteCommunicationRepository(dbConn *sql.DB) *SQLiteCommunicationRepository {
	return &SQLiteCommunicationRepository{dbConn: dbConn}
}

const sqliteUpsertCommunication = `
INSERT INTO communications (id, client_id, channel, direction, subject, summary, occurred_at, requires_followup, followup_due, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	channel = excluded.channel,
	direction = excluded.direction,
	subject = excluded.subject,
	summary = excluded.summary,
	occurred_at = excluded.occurred_at,
	requires_followup = excluded.requires_followup,
	followup_due = excluded.followup_due,
	updated_at = excluded.updated_at`

// Save persists a communication to the database.
func (r *SQLiteCommunicationRepository) Save(ctx context.Context, comm *domain.Communication) error {
	var followupDue sql.NullString
	if due := comm.FollowupDue(); due != nil {
		followupDue = sql.NullString{String: due.UTC().Format(time.RFC3339), Valid: true}
	}
	followup := 0
	if comm.RequiresFollowup() {
		followup = 1
	}

	_, err := r.dbConn.ExecContext(ctx, sqliteUpsertCommunication,
		comm.ID().String(),
		comm.ClientID().String(),
		string(comm.Channel()),
		string(comm.Direction()),
		toNullString(comm.Subject()),
		comm.Summary(),
		comm.OccurredAt().UTC().Format(time.RFC3339),
		followup,
		followupDue,
		comm.CreatedAt().UTC().Format(time.RFC3339),
		comm.UpdatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

const sqliteSelectCommunication = `
SELECT id, client_id, channel, direction, subject, summary, occurred_at, requires_followup, followup_due, created_at, updated_at
FROM communications`

// FindByID retrieves a communication by its ID.
func (r *SQLiteCommunicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Communication, error) {
	row := r.dbConn.QueryRowContext(ctx, sqliteSelectCommunication+` WHERE id = ?`, id.String())
	comm, err := scanSQLiteCommunication(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCommunicationNotFound, id)
		}
		return nil, err
	}
	return comm, nil
}

// FindByClientID retrieves a client's touchpoints, most recent first.
func (r *SQLiteCommunicationRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, limit int) ([]*domain.Communication, error) {
	rows, err := r.dbConn.QueryContext(ctx, sqliteSelectCommunication+` WHERE client_id = ? ORDER BY occurred_at DESC LIMIT ?`, clientID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSQLiteCommunications(rows)
}

// FindOverdueFollowups retrieves unresolved follow-ups past their due date.
func (r *SQLiteCommunicationRepository) FindOverdueFollowups(ctx context.Context, now time.Time) ([]*domain.Communication, error) {
	rows, err := r.dbConn.QueryContext(ctx, sqliteSelectCommunication+`
		WHERE requires_followup = 1 AND followup_due IS NOT NULL AND followup_due < ?
		ORDER BY followup_due`, now.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSQLiteCommunications(rows)
}

func collectSQLiteCommunications(rows *sql.Rows) ([]*domain.Communication, error) {
	comms := make([]*domain.Communication, 0)
	for rows.Next() {
		comm, err := scanSQLiteCommunication(rows)
		if err != nil {
			return nil, err
		}
		comms = append(comms, comm)
	}
	return comms, rows.Err()
}

func scanSQLiteCommunication(row sqliteRow) (*domain.Communication, error) {
	var (
		idStr            string
		clientIDStr      string
		channel          string
		direction        string
		subject          sql.NullString
		summary          string
		occurredAt       string
		requiresFollowup int
		followupDue      sql.NullString
		createdAt        string
		updatedAt        string
	)
	if err := row.Scan(&idStr, &clientIDStr, &channel, &direction, &subject, &summary, &occurredAt, &requiresFollowup, &followupDue, &createdAt, &updatedAt); err != nil {
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
	occurred, err := time.Parse(time.RFC3339, occurredAt)
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

	var due *time.Time
	if followupDue.Valid {
		parsed, err := time.Parse(time.RFC3339, followupDue.String)
		if err != nil {
			return nil, err
		}
		due = &parsed
	}

	return domain.RehydrateCommunication(
		id, clientID,
		domain.Channel(channel),
		domain.Direction(direction),
		fromNullString(subject), summary, occurred,
		requiresFollowup != 0, due,
		created, updated,
	), nil
}
