package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Errors
var (
	ErrMemberEmptyName    = errors.New("member name cannot be empty")
	ErrMemberEmptyEmail   = errors.New("member email cannot be empty")
	ErrMemberNegativeRate = errors.New("hourly rate cannot be negative")
)

// Member represents an agency staff member who logs time against tasks.
// Members without an hourly rate are priced at the configured default
// when estimating client cost.
type Member struct {
	ID         uuid.UUID
	Name       string
	Email      string
	HourlyRate *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMember creates a new member.
func NewMember(name, email string, hourlyRate *float64) (*Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMemberEmptyName
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrMemberEmptyEmail
	}
	if hourlyRate != nil && *hourlyRate < 0 {
		return nil, ErrMemberNegativeRate
	}

	now := time.Now().UTC()
	return &Member{
		ID:         uuid.New(),
		Name:       name,
		Email:      email,
		HourlyRate: hourlyRate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// SetHourlyRate updates the member's rate. A nil rate falls back to the
// configured default when costing.
func (m *Member) SetHourlyRate(rate *float64) error {
	if rate != nil && *rate < 0 {
		return ErrMemberNegativeRate
	}
	m.HourlyRate = rate
	m.UpdatedAt = time.Now().UTC()
	return nil
}
