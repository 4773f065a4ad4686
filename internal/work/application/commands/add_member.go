package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/google/uuid"
)

// AddMemberCommand registers an agency staff member.
type AddMemberCommand struct {
	Name       string
	Email      string
	HourlyRate *float64
}

// AddMemberResult contains the result of adding a member.
type AddMemberResult struct {
	MemberID uuid.UUID
}

// AddMemberHandler handles the AddMemberCommand.
type AddMemberHandler struct {
	memberRepo domain.MemberRepository
}

// NewAddMemberHandler creates a new AddMemberHandler.
func NewAddMemberHandler(memberRepo domain.MemberRepository) *AddMemberHandler {
	return &AddMemberHandler{memberRepo: memberRepo}
}

// Handle executes the AddMemberCommand.
func (h *AddMemberHandler) Handle(ctx context.Context, cmd AddMemberCommand) (*AddMemberResult, error) {
	member, err := domain.NewMember(cmd.Name, cmd.Email, cmd.HourlyRate)
	if err != nil {
		return nil, err
	}

	existing, err := h.memberRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrMemberExists
	}

	if err := h.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}

	return &AddMemberResult{MemberID: member.ID}, nil
}
