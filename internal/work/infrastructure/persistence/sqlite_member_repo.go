package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
)

// SQLiteMemberRepository implements domain.MemberRepository using SQLite.
type SQLiteMemberRepository struct {
	dbConn *sql.DB
}

// NewSQLiteMemberRepository creates a new SQLite member repository.
func NewSQLiteMemberRepository(dbConn *sql.DB) *SQLiteMemberRepository {
	return &SQLiteMemberRepository{dbConn: dbConn}
}

// Save persists a member to the database.
func (r *SQLiteMemberRepository) Save(ctx context.Context, member *domain.Member) error {
	var rate sql.NullFloat64
	if member.HourlyRate != nil {
		rate = sql.NullFloat64{Float64: *member.HourlyRate, Valid: true}
	}

	_, err := r.dbConn.ExecContext(ctx, `
		INSERT INTO members (id, name, email, hourly_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			hourly_rate = excluded.hourly_rate,
			updated_at = excluded.updated_at`,
		member.ID.String(), member.Name, member.Email, rate,
		member.CreatedAt.UTC().Format(time.RFC3339),
		member.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

const sqliteSelectMember = `SELECT id, name, email, hourly_rate, created_at, updated_at FROM members`

// FindByID retrieves a member by its ID.
func (r *SQLiteMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	member, err := scanSQLiteMember(r.dbConn.QueryRowContext(ctx, sqliteSelectMember+` WHERE id = ?`, id.String()))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, id)
		}
		return nil, err
	}
	return member, nil
}

// FindByEmail retrieves a member by email.
func (r *SQLiteMemberRepository) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	member, err := scanSQLiteMember(r.dbConn.QueryRowContext(ctx, sqliteSelectMember+` WHERE email = ?`, email))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// List retrieves all members ordered by name.
func (r *SQLiteMemberRepository) List(ctx context.Context) ([]*domain.Member, error) {
	rows, err := r.dbConn.QueryContext(ctx, sqliteSelectMember+` ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.Member, 0)
	for rows.Next() {
		member, err := scanSQLiteMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func scanSQLiteMember(row sqliteRow) (*domain.Member, error) {
	var (
		idStr     string
		name      string
		email     string
		rate      sql.NullFloat64
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&idStr, &name, &email, &rate, &createdAt, &updatedAt); err != nil {
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

	var ratePtr *float64
	if rate.Valid {
		ratePtr = &rate.Float64
	}

	return &domain.Member{
		ID:         id,
		Name:       name,
		Email:      email,
		HourlyRate: ratePtr,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}, nil
}
