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

// PostgresClientRepository implements domain.ClientRepository using PostgreSQL.
type PostgresClientRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresClientRepository creates a new PostgreSQL client repository.
func NewPostgresClientRepository(pool *pgxpool.Pool) *PostgresClientRepository {
	return &PostgresClientRepository{pool: pool}
}

const pgUpsertClient = `
INSERT INTO clients (id, name, email, company, contract_type, status, currency, monthly_budget, holded_contact_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	company = EXCLUDED.company,
	contract_type = EXCLUDED.contract_type,
	status = EXCLUDED.status,
	currency = EXCLUDED.currency,
	monthly_budget = EXCLUDED.monthly_budget,
	holded_contact_id = EXCLUDED.holded_contact_id,
	updated_at = EXCLUDED.updated_at`

// Save persists a client to the database.
func (r *PostgresClientRepository) Save(ctx context.Context, client *domain.Client) error {
	var budget *float64
	if amount, set := client.MonthlyBudget(); set {
		budget = &amount
	}
	var holdedID *string
	if id := client.HoldedContactID(); id != "" {
		holdedID = &id
	}

	_, err := r.pool.Exec(ctx, pgUpsertClient,
		client.ID(),
		client.Name(),
		client.Email(),
		client.Company(),
		string(client.ContractType()),
		string(client.Status()),
		client.Currency(),
		budget,
		holdedID,
		client.CreatedAt(),
		client.UpdatedAt(),
	)
	return err
}

const pgSelectClient = `
SELECT id, name, email, company, contract_type, status, currency, monthly_budget, holded_contact_id, created_at, updated_at
FROM clients`

// FindByID retrieves a client by its ID.
func (r *PostgresClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, pgSelectClient+` WHERE id = $1`, id)
	client, err := scanPgClient(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrClientNotFound, id)
		}
		return nil, err
	}
	return client, nil
}

// FindByHoldedContactID retrieves the client linked to a Holded contact.
func (r *PostgresClientRepository) FindByHoldedContactID(ctx context.Context, contactID string) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, pgSelectClient+` WHERE holded_contact_id = $1`, contactID)
	client, err := scanPgClient(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// List retrieves clients ordered by name, optionally filtered by status.
func (r *PostgresClientRepository) List(ctx context.Context, status *domain.ClientStatus) ([]*domain.Client, error) {
	query := pgSelectClient + ` ORDER BY name, id`
	args := []any{}
	if status != nil {
		query = pgSelectClient + ` WHERE status = $1 ORDER BY name, id`
		args = append(args, string(*status))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanPgClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

type pgRow interface {
	Scan(dest ...any) error
}

func scanPgClient(row pgRow) (*domain.Client, error) {
	var (
		id           uuid.UUID
		name         string
		email        string
		company      string
		contractType string
		status       string
		currency     string
		budget       *float64
		holdedID     *string
		createdAt    time.Time
		updatedAt    time.Time
	)
	if err := row.Scan(&id, &name, &email, &company, &contractType, &status, &currency, &budget, &holdedID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	contact := ""
	if holdedID != nil {
		contact = *holdedID
	}

	return domain.RehydrateClient(
		id, name, email, company,
		domain.ContractType(contractType),
		domain.ClientStatus(status),
		currency, budget, contact,
		createdAt, updatedAt,
	), nil
}
