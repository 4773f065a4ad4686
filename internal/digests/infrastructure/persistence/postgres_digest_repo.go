package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulso/internal/digests/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDigestRepository implements domain.DigestRepository using PostgreSQL.
type PostgresDigestRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDigestRepository creates a new PostgreSQL digest repository.
func NewPostgresDigestRepository(pool *pgxpool.Pool) *PostgresDigestRepository {
	return &PostgresDigestRepository{pool: pool}
}

const pgUpsertDigest = `
INSERT INTO digests (id, client_id, period_start, period_end, status, sent_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
	status = EXCLUDED.status,
	sent_at = EXCLUDED.sent_at,
	updated_at = EXCLUDED.updated_at`

// Save persists a digest to the database.
func (r *PostgresDigestRepository) Save(ctx context.Context, digest *domain.Digest) error {
	_, err := r.pool.Exec(ctx, pgUpsertDigest,
		digest.ID(),
		digest.ClientID(),
		digest.PeriodStart(),
		digest.PeriodEnd(),
		string(digest.Status()),
		digest.SentAt(),
		digest.CreatedAt(),
		digest.UpdatedAt(),
	)
	return err
}

const pgSelectDigest = `
SELECT id, client_id, period_start, period_end, status, sent_at, created_at, updated_at
FROM digests`

// FindByID retrieves a digest by its ID.
func (r *PostgresDigestRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Digest, error) {
	row := r.pool.QueryRow(ctx, pgSelectDigest+` WHERE id = $1`, id)
	digest, err := scanPgDigest(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDigestNotFound, id)
		}
		return nil, err
	}
	return digest, nil
}

// FindByPeriod retrieves the digest covering the week starting at periodStart.
func (r *PostgresDigestRepository) FindByPeriod(ctx context.Context, clientID uuid.UUID, periodStart time.Time) (*domain.Digest, error) {
	row := r.pool.QueryRow(ctx, pgSelectDigest+` WHERE client_id = $1 AND period_start = $2`, clientID, periodStart)
	digest, err := scanPgDigest(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrDigestNotFound
		}
		return nil, err
	}
	return digest, nil
}

// FindByClientID retrieves a client's digests, newest period first.
func (r *PostgresDigestRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, limit int) ([]*domain.Digest, error) {
	rows, err := r.pool.Query(ctx, pgSelectDigest+` WHERE client_id = $1 ORDER BY period_start DESC LIMIT $2`, clientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	digests := make([]*domain.Digest, 0)
	for rows.Next() {
		digest, err := scanPgDigest(rows)
		if err != nil {
			return nil, err
		}
		digests = append(digests, digest)
	}
	return digests, rows.Err()
}

type pgRow interface {
	Scan(dest ...any) error
}

func scanPgDigest(row pgRow) (*domain.Digest, error) {
	var (
		id          uuid.UUID
		clientID    uuid.UUID
		periodStart time.Time
		periodEnd   time.Time
		status      string
		sentAt      *time.Time
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&id, &clientID, &periodStart, &periodEnd, &status, &sentAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return domain.RehydrateDigest(
		id, clientID,
		periodStart.UTC(), periodEnd.UTC(),
		domain.DigestStatus(status),
		sentAt, createdAt, updatedAt,
	), nil
}
