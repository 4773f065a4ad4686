package persistence_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/felixgeelhaar/pulso/internal/digests/domain"
	"github.com/felixgeelhaar/pulso/internal/digests/infrastructure/persistence"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDigestDB(t *testing.T) (*persistence.SQLiteDigestRepository, uuid.UUID) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.RunSQLiteMigrations(context.Background(), db))

	clientID := uuid.New()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.Exec(
		`INSERT INTO clients (id, name, created_at, updated_at) VALUES (?, 'Acme', ?, ?)`,
		clientID.String(), now, now,
	)
	require.NoError(t, err)

	return persistence.NewSQLiteDigestRepository(db), clientID
}

func TestSQLiteDigestRepository_Roundtrip(t *testing.T) {
	repo, clientID := setupDigestDB(t)
	ctx := context.Background()

	digest := domain.NewDigest(clientID, time.Date(2026, 5, 13, 15, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, digest))

	found, err := repo.FindByID(ctx, digest.ID())
	require.NoError(t, err)
	assert.Equal(t, clientID, found.ClientID())
	assert.Equal(t, time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC), found.PeriodStart())
	assert.Equal(t, time.Date(2026, 5, 17, 0, 0, 0, 0, time.UTC), found.PeriodEnd())
	assert.Equal(t, domain.DigestDraft, found.Status())
	assert.Nil(t, found.SentAt())

	sentAt := time.Date(2026, 5, 15, 10, 30, 0, 0, time.UTC)
	require.NoError(t, found.MarkSent(sentAt))
	require.NoError(t, repo.Save(ctx, found))

	reloaded, err := repo.FindByID(ctx, digest.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.DigestSent, reloaded.Status())
	require.NotNil(t, reloaded.SentAt())
	assert.Equal(t, sentAt, *reloaded.SentAt())
}

func TestSQLiteDigestRepository_FindByID_NotFound(t *testing.T) {
	repo, _ := setupDigestDB(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrDigestNotFound)
}

func TestSQLiteDigestRepository_FindByPeriod(t *testing.T) {
	repo, clientID := setupDigestDB(t)
	ctx := context.Background()

	digest := domain.NewDigest(clientID, time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, digest))

	found, err := repo.FindByPeriod(ctx, clientID, digest.PeriodStart())
	require.NoError(t, err)
	assert.Equal(t, digest.ID(), found.ID())

	// A different week is uncovered.
	_, err = repo.FindByPeriod(ctx, clientID, digest.PeriodStart().AddDate(0, 0, -7))
	assert.ErrorIs(t, err, domain.ErrDigestNotFound)
}

func TestSQLiteDigestRepository_FindByClientID(t *testing.T) {
	repo, clientID := setupDigestDB(t)
	ctx := context.Background()

	// Three consecutive weeks, saved oldest first.
	for week := 3; week >= 1; week-- {
		anchor := time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -7*week)
		require.NoError(t, repo.Save(ctx, domain.NewDigest(clientID, anchor)))
	}

	digests, err := repo.FindByClientID(ctx, clientID, 10)
	require.NoError(t, err)
	require.Len(t, digests, 3)
	assert.True(t, digests[0].PeriodStart().After(digests[1].PeriodStart()), "newest period first")
	assert.True(t, digests[1].PeriodStart().After(digests[2].PeriodStart()))

	limited, err := repo.FindByClientID(ctx, clientID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteDigestRepository_PeriodUniquePerClient(t *testing.T) {
	repo, clientID := setupDigestDB(t)
	ctx := context.Background()

	anchor := time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, domain.NewDigest(clientID, anchor)))

	// A second digest for the same week violates the period constraint.
	err := repo.Save(ctx, domain.NewDigest(clientID, anchor))
	assert.Error(t, err)
}
