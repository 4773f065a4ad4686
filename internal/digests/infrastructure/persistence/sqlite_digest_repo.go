package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulso/internal/digests/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const sqliteDateFormat = "2006-01-02"

// SQLiteDigestRepository implements domain.DigestRepository using SQLite.
type SQLiteDigestRepository struct {
	dbConn *sql.DB
}

// NewSQLiteDigestRepository creates a new SQLite digest repository.
func NewSQLiteDigestRepository(dbConn *sql.DB) *SQLiteDigestRepository {
	return &SQLiteDigestRepository{dbConn: dbConn}
}

const sqliteUpsertDigest = `
INSERT INTO digests (id, client_id, period_start, period_end, status, sent_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	status = excluded.status,
	sent_at = excluded.sent_at,
	updated_at = excluded.updated_at`

// Save persists a digest to the database.
func (r *SQLiteDigestRepository) Save(ctx context.Context, digest *domain.Digest) error {
	_, err := r.dbConn.ExecContext(ctx, sqliteUpsertDigest,
		digest.ID().String(),
		digest.ClientID().String(),
		digest.PeriodStart().Format(sqliteDateFormat),
		digest.PeriodEnd().Format(sqliteDateFormat),
		string(digest.Status()),
		toNullTime(digest.SentAt()),
		digest.CreatedAt().UTC().Format(time.RFC3339),
		digest.UpdatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

const sqliteSelectDigest = `
SELECT id, client_id, period_start, period_end, status, sent_at, created_at, updated_at
FROM digests`

// FindByID retrieves a digest by its ID.
func (r *SQLiteDigestRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Digest, error) {
	row := r.dbConn.QueryRowContext(ctx, sqliteSelectDigest+` WHERE id = ?`, id.String())
	digest, err := scanSQLiteDigest(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDigestNotFound, id)
		}
		return nil, err
	}
	return digest, nil
}

// FindByPeriod retrieves the digest covering the week starting at periodStart.
func (r *SQLiteDigestRepository) FindByPeriod(ctx context.Context, clientID uuid.UUID, periodStart time.Time) (*domain.Digest, error) {
	row := r.dbConn.QueryRowContext(ctx,
		sqliteSelectDigest+` WHERE client_id = ? AND period_start = ?`,
		clientID.String(), periodStart.UTC().Format(sqliteDateFormat),
	)
	digest, err := scanSQLiteDigest(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrDigestNotFound
		}
		return nil, err
	}
	return digest, nil
}

// FindByClientID retrieves a client's digests, newest period first.
func (r *SQLiteDigestRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, limit int) ([]*domain.Digest, error) {
	rows, err := r.dbConn.QueryContext(ctx,
		sqliteSelectDigest+` WHERE client_id = ? ORDER BY period_start DESC LIMIT ?`,
		clientID.String(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	digests := make([]*domain.Digest, 0)
	for rows.Next() {
		digest, err := scanSQLiteDigest(rows)
		if err != nil {
			return nil, err
		}
		digests = append(digests, digest)
	}
	return digests, rows.Err()
}

type sqliteRow interface {
	Scan(dest ...any) error
}

func scanSQLiteDigest(row sqliteRow) (*domain.Digest, error) {
	var (
		idStr       string
		clientIDStr string
		periodStart string
		periodEnd   string
		status      string
		sentAt      sql.NullString
		createdAt   string
		updatedAt   string
	)
	if err := row.Scan(&idStr, &clientIDStr, &periodStart, &periodEnd, &status, &sentAt, &createdAt, &updatedAt); err != nil {
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
	start, err := time.Parse(sqliteDateFormat, periodStart)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(sqliteDateFormat, periodEnd)
	if err != nil {
		return nil, err
	}
	sent, err := fromNullTime(sentAt)
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

	return domain.RehydrateDigest(
		id, clientID, start, end,
		domain.DigestStatus(status),
		sent, created, updated,
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
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
