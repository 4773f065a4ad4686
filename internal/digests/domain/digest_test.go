package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "monday stays put",
			in:   time.Date(2026, 5, 11, 9, 30, 0, 0, time.UTC),
			want: time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "wednesday rolls back to monday",
			in:   time.Date(2026, 5, 13, 23, 59, 0, 0, time.UTC),
			want: time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the previous monday",
			in:   time.Date(2026, 5, 17, 1, 0, 0, 0, time.UTC),
			want: time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "crosses month boundary",
			in:   time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
			want: time.Date(2026, 4, 27, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStart(tt.in))
		})
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(time.Date(2026, 5, 15, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), end)

	start, end = MonthRange(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestNewDigest(t *testing.T) {
	clientID := uuid.New()
	digest := NewDigest(clientID, time.Date(2026, 5, 13, 15, 0, 0, 0, time.UTC))

	assert.Equal(t, clientID, digest.ClientID())
	assert.Equal(t, time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC), digest.PeriodStart())
	assert.Equal(t, time.Date(2026, 5, 17, 0, 0, 0, 0, time.UTC), digest.PeriodEnd())
	assert.Equal(t, DigestDraft, digest.Status())
	assert.Nil(t, digest.SentAt())
	assert.NotEqual(t, uuid.Nil, digest.ID())
}

func TestDigest_MarkReviewed(t *testing.T) {
	digest := NewDigest(uuid.New(), time.Now())

	require.NoError(t, digest.MarkReviewed())
	assert.Equal(t, DigestReviewed, digest.Status())

	// Reviewing again is a no-op.
	require.NoError(t, digest.MarkReviewed())
	assert.Equal(t, DigestReviewed, digest.Status())

	require.NoError(t, digest.MarkSent(time.Time{}))
	assert.ErrorIs(t, digest.MarkReviewed(), ErrDigestAlreadySent)
}

func TestDigest_MarkSent(t *testing.T) {
	digest := NewDigest(uuid.New(), time.Now())
	sentAt := time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(t, digest.MarkSent(sentAt))
	assert.Equal(t, DigestSent, digest.Status())
	require.NotNil(t, digest.SentAt())
	assert.Equal(t, sentAt, *digest.SentAt())

	assert.ErrorIs(t, digest.MarkSent(sentAt), ErrDigestAlreadySent)
}

func TestDigest_MarkSent_DefaultsToNow(t *testing.T) {
	digest := NewDigest(uuid.New(), time.Now())
	before := time.Now().UTC()

	require.NoError(t, digest.MarkSent(time.Time{}))

	require.NotNil(t, digest.SentAt())
	assert.False(t, digest.SentAt().Before(before))
}

func TestRehydrateDigest(t *testing.T) {
	id := uuid.New()
	clientID := uuid.New()
	start := time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)
	sentAt := time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC)
	createdAt := time.Now().UTC().Add(-time.Hour)
	updatedAt := time.Now().UTC()

	digest := RehydrateDigest(id, clientID, start, end, DigestSent, &sentAt, createdAt, updatedAt)

	assert.Equal(t, id, digest.ID())
	assert.Equal(t, clientID, digest.ClientID())
	assert.Equal(t, start, digest.PeriodStart())
	assert.Equal(t, end, digest.PeriodEnd())
	assert.Equal(t, DigestSent, digest.Status())
	assert.Equal(t, sentAt, *digest.SentAt())
	assert.Equal(t, createdAt, digest.CreatedAt())
	assert.Equal(t, updatedAt, digest.UpdatedAt())
}
