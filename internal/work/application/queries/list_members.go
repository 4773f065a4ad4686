package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
)

// MemberDTO is a data transfer object for members.
type MemberDTO struct {
	ID         uuid.UUID
	Name       string
	Email      string
	HourlyRate *float64
	CreatedAt  time.Time
}

// ListMembersQuery lists all agency staff members.
type ListMembersQuery struct{}

// ListMembersHandler handles the ListMembersQuery.
type ListMembersHandler struct {
	memberRepo domain.MemberRepository
}

// NewListMembersHandler creates a new ListMembersHandler.
func NewListMembersHandler(memberRepo domain.MemberRepository) *ListMembersHandler {
	return &ListMembersHandler{memberRepo: memberRepo}
}

// Handle executes the ListMembersQuery.
func (h *ListMembersHandler) Handle(ctx context.Context, _ ListMembersQuery) ([]MemberDTO, error) {
	members, err := h.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]MemberDTO, len(members))
	for i, m := range members {
		dtos[i] = MemberDTO{
			ID:         m.ID,
			Name:       m.Name,
			Email:      m.Email,
			HourlyRate: m.HourlyRate,
			CreatedAt:  m.CreatedAt,
		}
	}
	return dtos, nil
}
