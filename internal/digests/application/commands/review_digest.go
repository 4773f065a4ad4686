package commands

import (
	"context"

	"github.com/felixgeelhaar/pulso/internal/digests/domain"
	"github.com/google/uuid"
)

// ReviewDigestCommand marks a digest as internally reviewed.
type ReviewDigestCommand struct {
	DigestID uuid.UUID
}

// ReviewDigestHandler handles the ReviewDigestCommand.
type ReviewDigestHandler struct {
	digestRepo domain.DigestRepository
}

// NewReviewDigestHandler creates a new ReviewDigestHandler.
func NewReviewDigestHandler(digestRepo domain.DigestRepository) *ReviewDigestHandler {
	return &ReviewDigestHandler{digestRepo: digestRepo}
}

// Handle executes the ReviewDigestCommand.
func (h *ReviewDigestHandler) Handle(ctx context.Context, cmd ReviewDigestCommand) error {
	digest, err := h.digestRepo.FindByID(ctx, cmd.DigestID)
	if err != nil {
		return err
	}

	if err := digest.MarkReviewed(); err != nil {
		return err
	}

	return h.digestRepo.Save(ctx, digest)
}
