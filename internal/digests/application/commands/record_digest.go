package commands

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/pulso/internal/digests/domain"
	"github.com/google/uuid"
)

// RecordDigestCommand records that a weekly digest was produced for a
// client. A zero Anchor means the current week.
type RecordDigestCommand struct {
	ClientID uuid.UUID
	Anchor   time.Time
}

// RecordDigestResult contains the outcome of recording a digest.
// Created is false when the week was already covered; recording the
// same week twice returns the existing digest instead of failing.
type RecordDigestResult struct {
	DigestID    uuid.UUID
	PeriodStart time.Time
	Created     bool
}

// RecordDigestHandler handles the RecordDigestCommand.
type RecordDigestHandler struct {
	digestRepo domain.DigestRepository
}

// NewRecordDigestHandler creates a new RecordDigestHandler.
func NewRecordDigestHandler(digestRepo domain.DigestRepository) *RecordDigestHandler {
	return &RecordDigestHandler{digestRepo: digestRepo}
}

// Handle executes the RecordDigestCommand.
func (h *RecordDigestHandler) Handle(ctx context.Context, cmd RecordDigestCommand) (*RecordDigestResult, error) {
	anchor := cmd.Anchor
	if anchor.IsZero() {
		anchor = time.Now().UTC()
	}

	digest := domain.NewDigest(cmd.ClientID, anchor)

	existing, err := h.digestRepo.FindByPeriod(ctx, cmd.ClientID, digest.PeriodStart())
	if err == nil {
		return &RecordDigestResult{
			DigestID:    existing.ID(),
			PeriodStart: existing.PeriodStart(),
		}, nil
	}
	if !errors.Is(err, domain.ErrDigestNotFound) {
		return nil, err
	}

	if err := h.digestRepo.Save(ctx, digest); err != nil {
		return nil, err
	}

	return &RecordDigestResult{
		DigestID:    digest.ID(),
		PeriodStart: digest.PeriodStart(),
		Created:     true,
	}, nil
}
