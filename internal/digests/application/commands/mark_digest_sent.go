package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/digests/domain"
	"github.com/google/uuid"
)

// MarkDigestSentCommand records that a digest was delivered to the
// client. A zero SentAt means now.
type MarkDigestSentCommand struct {
	DigestID uuid.UUID
	SentAt   time.Time
}

// MarkDigestSentHandler handles the MarkDigestSentCommand.
type MarkDigestSentHandler struct {
	digestRepo domain.DigestRepository
}

// NewMarkDigestSentHandler creates a new MarkDigestSentHandler.
func NewMarkDigestSentHandler(digestRepo domain.DigestRepository) *MarkDigestSentHandler {
	return &MarkDigestSentHandler{digestRepo: digestRepo}
}

// Handle executes the MarkDigestSentCommand.
func (h *MarkDigestSentHandler) Handle(ctx context.Context, cmd MarkDigestSentCommand) error {
	digest, err := h.digestRepo.FindByID(ctx, cmd.DigestID)
	if err != nil {
		return err
	}

	if err := digest.MarkSent(cmd.SentAt); err != nil {
		return err
	}

	return h.digestRepo.Save(ctx, digest)
}
