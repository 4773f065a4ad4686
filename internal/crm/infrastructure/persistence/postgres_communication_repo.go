package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCommunicationRepository implements domain.CommunicationRepository
// using PostgreSQL.
type PostgresCommunicationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCommunicationRepository creates a new PostgreSQL communication repository.
func NewPostgresCommunicationRepository(pool *pgxpool.Pool) *PostgresCommunicationRepository {
	return &PostgresCommunicationRepository{pool: pool}
}

const pgUpsertCommunication = `
INSERT INTO communications (id, client_id, channel, direction, subject, summary, occurred_at, requires_followup, followup_due, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
	channel = EXCLUDED.channel,
	direction = EXCLUDED.direction,
	subject = EXCLUDED.subject,
	summary = EXCLUDED.summary,
	occurred_at = EXCLUDED.occurred_at,
	requires_followup = EXCLUDED.requires_followup,
	followup_due = EXCLUDED.followup_due,
	updated_at = EXCLUDED.updated_at`

// Save persists a communication to the database.
func (r *PostgresCommunicationRepository) Save(ctx context.Context, comm *domain.Communication) error {
	var subject *string
	if s := comm.Subject(); s != "" {
		subject = &s
	}

	_, err := r.pool.Exec(ctx, pgUpsertCommunication,
		comm.ID(),
		comm.ClientID(),
		string(comm.Channel()),
		string(comm.Direction()),
		subject,
		comm.Summary(),
		comm.OccurredAt(),
		comm.RequiresFollowup(),
		comm.FollowupDue(),
		comm.CreatedAt(),
		comm.UpdatedAt(),
	)
	return err
}

const pgSelectCommunication = `
SELECT id, client_id, channel, direction, subject, summary, occurred_at, requires_followup, followup_due, created_at, updated_at
FROM communications`

// FindByID retrieves a communication by its ID.
func (r *PostgresCommunicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Communication, error) {
	row := r.pool.QueryRow(ctx, pgSelectCommunication+` WHERE id = $1`, id)
	comm, err := scanPgCommunication(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCommunicationNotFound, id)
		}
		return nil, err
	}
	return comm, nil
}

// FindByClientID retrieves a client's touchpoints, most recent first.
func (r *PostgresCommunicationRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, limit int) ([]*domain.Communication, error) {
	rows, err := r.pool.Query(ctx, pgSelectCommunication+` WHERE client_id = $1 ORDER BY occurred_at DESC LIMIT $2`, clientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPgCommunications(rows)
}

// FindOverdueFollowups retrieves unresolved follow-ups past their due date.
func (r *PostgresCommunicationRepository) FindOverdueFollowups(ctx context.Context, now time.Time) ([]*domain.Communication, error) {
	rows, err := r.pool.Query(ctx, pgSelectCommunication+`
		WHERE requires_followup AND followup_due IS NOT NULL AND followup_due < $1
		ORDER BY followup_due`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPgCommunications(rows)
}

type pgRows interface {
	pgRow
	Next() bool
	Err() error
}

func collectPgCommunications(rows pgRows) ([]*domain.Communication, error) {
	comms := make([]*domain.Communication, 0)
	for rows.Next() {
		comm, err := scanPgCommunication(rows)
		if err != nil {
			return nil, err
		}
		comms = append(comms, comm)
	}
	return comms, rows.Err()
}

func scanPgCommunication(row pgRow) (*domain.Communication, error) {
	var (
		id               uuid.UUID
		clientID         uuid.UUID
		channel          string
		direction        string
		subject          *string
		summary          string
		occurredAt       time.Time
		requiresFollowup bool
		followupDue      *time.Time
		createdAt        time.Time
		updatedAt        time.Time
	)
	if err := row.Scan(&id, &clientID, &channel, &direction, &subject, &summary, &occurredAt, &requiresFollowup, &followupDue, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	subj := ""
	if subject != nil {
		subj = *subject
	}

	return domain.RehydrateCommunication(
		id, clientID,
		domain.Channel(channel),
		domain.Direction(direction),
		subj, summary, occurredAt,
		requiresFollowup, followupDue,
		createdAt, updatedAt,
	), nil
}
