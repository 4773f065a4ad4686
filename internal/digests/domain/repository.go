package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDigestNotFound = errors.New("digest not found")

// DigestRepository defines the persistence contract for digests.
type DigestRepository interface {
	Save(ctx context.Context, digest *Digest) error
	FindByID(ctx context.Context, id uuid.UUID) (*Digest, error)
	// FindByPeriod looks up the digest covering the week that starts at
	// periodStart. Returns ErrDigestNotFound when the week is uncovered.
	FindByPeriod(ctx context.Context, clientID uuid.UUID, periodStart time.Time) (*Digest, error)
	// FindByClientID returns the client's digests, newest period first.
	FindByClientID(ctx context.Context, clientID uuid.UUID, limit int) ([]*Digest, error)
}
