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

// SQLiteClientRepository implements domain.ClientRepository using SQLite.
type SQLiteClientRepository struct {
	dbConn *sql.DB
}

// NewSQLiteClientRepository creates a new SQLite client repository.
func NewSQLiteClientRepository(dbConn *sql.DB) *SQLiteClientRepository {
	return &SQLiteClientRepository{dbConn: dbConn}
}

const sqliteUpsertClient = `
INSERT INTO clients (id, name, email, company, contract_type, status, currency, monthly_budget, holded_contact_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	name = excluded.name,
	email = excluded.email,
	company = excluded.company,
	contract_type = excluded.contract_type,
	status = excluded.status,
	currency = excluded.currency,
	monthly_budget = excluded.monthly_budget,
	holded_contact_id = excluded.holded_contact_id,
	updated_at = excluded.updated_at`

// Save persists a client to the database.
func (r *SQLiteClientRepository) Save(ctx context.Context, client *domain.Client) error {
	var budget sql.NullFloat64
	if amount, set := client.MonthlyBudget(); set {
		budget = sql.NullFloat64{Float64: amount, Valid: true}
	}

	_, err := r.dbConn.ExecContext(ctx, sqliteUpsertClient,
		client.ID().String(),
		client.Name(),
		client.Email(),
		client.Company(),
		string(client.ContractType()),
		string(client.Status()),
		client.Currency(),
		budget,
		toNullString(client.HoldedContactID()),
		client.CreatedAt().UTC().Format(time.RFC3339),
		client.UpdatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

const sqliteSelectClient = `
SELECT id, name, email, company, contract_type, status, currency, monthly_budget, holded_contact_id, created_at, updated_at
FROM clients`

// FindByID retrieves a client by its ID.
func (r *SQLiteClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	row := r.dbConn.QueryRowContext(ctx, sqliteSelectClient+` WHERE id = ?`, id.String())
	client, err := scanSQLiteClient(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrClientNotFound, id)
		}
		return nil, err
	}
	return client, nil
}

// FindByHoldedContactID retrieves the client linked to a Holded contact.
func (r *SQLiteClientRepository) FindByHoldedContactID(ctx context.Context, contactID string) (*domain.Client, error) {
	row := r.dbConn.QueryRowContext(ctx, sqliteSelectClient+` WHERE holded_contact_id = ?`, contactID)
	client, err := scanSQLiteClient(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// List retrieves clients ordered by name, optionally filtered by status.
func (r *SQLiteClientRepository) List(ctx context.Context, status *domain.ClientStatus) ([]*domain.Client, error) {
	query := sqliteSelectClient + ` ORDER BY name, id`
	args := []any{}
	if status != nil {
		query = sqliteSelectClient + ` WHERE status = ? ORDER BY name, id`
		args = append(args, string(*status))
	}

	rows, err := r.dbConn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanSQLiteClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

type sqliteRow interface {
	Scan(dest ...any) error
}

func scanSQLiteClient(row sqliteRow) (*domain.Client, error) {
	var (
		idStr        string
		name         string
		email        string
		company      string
		contractType string
		status       string
		currency     string
		budget       sql.NullFloat64
		holdedID     sql.NullString
		createdAt    string
		updatedAt    string
	)
	if err := row.Scan(&idStr, &name, &email, &company, &contractType, &status, &currency, &budget, &holdedID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
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

	var budgetPtr *float64
	if budget.Valid {
		budgetPtr = &budget.Float64
	}

	return domain.RehydrateClient(
		id, name, email, company,
		domain.ContractType(contractType),
		domain.ClientStatus(status),
		currency, budgetPtr, fromNullString(holdedID),
		created, updated,
	), nil
}

// Helper functions
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}
