package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresClientCatalog implements domain.ClientCatalog using PostgreSQL.
type PostgresClientCatalog struct {
	pool *pgxpool.Pool
}

// NewPostgresClientCatalog creates a new PostgreSQL client catalog.
func NewPostgresClientCatalog(pool *pgxpool.Pool) *PostgresClientCatalog {
	return &PostgresClientCatalog{pool: pool}
}

// Find returns the reference for one client.
func (c *PostgresClientCatalog) Find(ctx context.Context, clientID uuid.UUID) (domain.ClientRef, error) {
	var ref domain.ClientRef
	err := c.pool.QueryRow(ctx,
		`SELECT id, name FROM clients WHERE id = $1`, clientID,
	).Scan(&ref.ID, &ref.Name)
	if err != nil {
		if database.IsNoRows(err) {
			return domain.ClientRef{}, fmt.Errorf("%w: %s", domain.ErrClientNotFound, clientID)
		}
		return domain.ClientRef{}, err
	}
	return ref, nil
}

// ListActive returns references for all active clients, ordered by name
// so sweep output is stable.
func (c *PostgresClientCatalog) ListActive(ctx context.Context) ([]domain.ClientRef, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT id, name FROM clients WHERE status = 'active' ORDER BY name, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []domain.ClientRef
	for rows.Next() {
		var ref domain.ClientRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
