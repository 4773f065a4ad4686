package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLiteClientCatalog implements domain.ClientCatalog for local mode.
type SQLiteClientCatalog struct {
	db *sql.DB
}

// NewSQLiteClientCatalog creates a new SQLite client catalog.
func NewSQLiteClientCatalog(db *sql.DB) *SQLiteClientCatalog {
	return &SQLiteClientCatalog{db: db}
}

// Find returns the reference for one client.
func (c *SQLiteClientCatalog) Find(ctx context.Context, clientID uuid.UUID) (domain.ClientRef, error) {
	var rawID, name string
	err := c.db.QueryRowContext(ctx,
		`SELECT id, name FROM clients WHERE id = ?`, clientID.String(),
	).Scan(&rawID, &name)
	if err != nil {
		if database.IsNoRows(err) {
			return domain.ClientRef{}, fmt.Errorf("%w: %s", domain.ErrClientNotFound, clientID)
		}
		return domain.ClientRef{}, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.ClientRef{}, fmt.Errorf("parse client id: %w", err)
	}
	return domain.ClientRef{ID: id, Name: name}, nil
}

// ListActive returns references for all active clients, ordered by name
// so sweep output is stable.
func (c *SQLiteClientCatalog) ListActive(ctx context.Context) ([]domain.ClientRef, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, name FROM clients WHERE status = 'active' ORDER BY name, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []domain.ClientRef
	for rows.Next() {
		var rawID, name string
		if err := rows.Scan(&rawID, &name); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse client id: %w", err)
		}
		refs = append(refs, domain.ClientRef{ID: id, Name: name})
	}
	return refs, rows.Err()
}
