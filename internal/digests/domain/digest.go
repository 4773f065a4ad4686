package domain

import (
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/pulso/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrDigestAlreadySent = errors.New("digest has already been sent")
)

// DigestStatus represents the review lifecycle of a weekly digest.
type DigestStatus string

const (
	DigestDraft    DigestStatus = "draft"
	DigestReviewed DigestStatus = "reviewed"
	DigestSent     DigestStatus = "sent"
)

// IsValid checks if the status is valid.
func (s DigestStatus) IsValid() bool {
	switch s {
	case DigestDraft, DigestReviewed, DigestSent:
		return true
	default:
		return false
	}
}

// Digest records that a weekly client report was produced. It carries no
// content; its existence for a period is the coverage signal.
type Digest struct {
	sharedDomain.BaseEntity
	clientID    uuid.UUID
	periodStart time.Time
	periodEnd   time.Time
	status      DigestStatus
	sentAt      *time.Time
}

// NewDigest creates a draft digest for the week containing anchor.
// Periods are Monday-aligned: start is the Monday of anchor's week,
// end the following Sunday.
func NewDigest(clientID uuid.UUID, anchor time.Time) *Digest {
	start := WeekStart(anchor)
	return &Digest{
		BaseEntity:  sharedDomain.NewBaseEntity(),
		clientID:    clientID,
		periodStart: start,
		periodEnd:   start.AddDate(0, 0, 6),
		status:      DigestDraft,
	}
}

// Getters
func (d *Digest) ClientID() uuid.UUID    { return d.clientID }
func (d *Digest) PeriodStart() time.Time { return d.periodStart }
func (d *Digest) PeriodEnd() time.Time   { return d.periodEnd }
func (d *Digest) Status() DigestStatus   { return d.status }
func (d *Digest) SentAt() *time.Time     { return d.sentAt }

// MarkReviewed records that the digest passed internal review.
func (d *Digest) MarkReviewed() error {
	if d.status == DigestSent {
		return ErrDigestAlreadySent
	}
	if d.status == DigestReviewed {
		return nil
	}
	d.status = DigestReviewed
	d.Touch()
	return nil
}

// MarkSent records delivery to the client. A zero sentAt means now.
func (d *Digest) MarkSent(sentAt time.Time) error {
	if d.status == DigestSent {
		return ErrDigestAlreadySent
	}
	if sentAt.IsZero() {
		sentAt = time.Now().UTC()
	} else {
		sentAt = sentAt.UTC()
	}
	d.status = DigestSent
	d.sentAt = &sentAt
	d.Touch()
	return nil
}

// RehydrateDigest recreates a digest from persisted state.
func RehydrateDigest(
	id uuid.UUID,
	clientID uuid.UUID,
	periodStart time.Time,
	periodEnd time.Time,
	status DigestStatus,
	sentAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *Digest {
	return &Digest{
		BaseEntity:  sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		clientID:    clientID,
		periodStart: periodStart,
		periodEnd:   periodEnd,
		status:      status,
		sentAt:      sentAt,
	}
}

// WeekStart returns the Monday of t's week at midnight UTC. Sundays
// belong to the week that started the previous Monday.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	back := (int(t.Weekday()) + 6) % 7
	year, month, day := t.AddDate(0, 0, -back).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the first day of t's calendar month and the first
// day of the next month, both at midnight UTC.
func MonthRange(t time.Time) (time.Time, time.Time) {
	year, month, _ := t.UTC().Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
