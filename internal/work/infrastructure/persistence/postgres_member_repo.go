package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMemberRepository implements domain.MemberRepository using PostgreSQL.
type PostgresMemberRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMemberRepository creates a new PostgreSQL member repository.
func NewPostgresMemberRepository(pool *pgxpool.Pool) *PostgresMemberRepository {
	return &PostgresMemberRepository{pool: pool}
}

// Save persists a member to the database.
func (r *PostgresMemberRepository) Save(ctx context.Context, member *domain.Member) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO members (id, name, email, hourly_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			hourly_rate = EXCLUDED.hourly_rate,
			updated_at = EXCLUDED.updated_at`,
		member.ID, member.Name, member.Email, member.HourlyRate, member.CreatedAt, member.UpdatedAt,
	)
	return err
}

const pgSelectMember = `SELECT id, name, email, hourly_rate, created_at, updated_at FROM members`

// FindByID retrieves a member by its ID.
func (r *PostgresMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	member, err := scanPgMember(r.pool.QueryRow(ctx, pgSelectMember+` WHERE id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, id)
		}
		return nil, err
	}
	return member, nil
}

// FindByEmail retrieves a member by email.
func (r *PostgresMemberRepository) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	member, err := scanPgMember(r.pool.QueryRow(ctx, pgSelectMember+` WHERE email = $1`, email))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// List retrieves all members ordered by name.
func (r *PostgresMemberRepository) List(ctx context.Context) ([]*domain.Member, error) {
	rows, err := r.pool.Query(ctx, pgSelectMember+` ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.Member, 0)
	for rows.Next() {
		member, err := scanPgMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func scanPgMember(row pgRow) (*domain.Member, error) {
	var (
		id        uuid.UUID
		name      string
		email     string
		rate      *float64
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &email, &rate, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return &domain.Member{
		ID:         id,
		Name:       name,
		Email:      email,
		HourlyRate: rate,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}
