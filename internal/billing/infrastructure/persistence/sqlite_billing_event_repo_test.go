package persistence_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/felixgeelhaar/pulso/internal/billing/domain"
	"github.com/felixgeelhaar/pulso/internal/billing/infrastructure/persistence"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupBillingDB(t *testing.T) (*persistence.SQLiteBillingEventRepository, uuid.UUID) {
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

	return persistence.NewSQLiteBillingEventRepository(db), clientID
}

func TestSQLiteBillingEventRepository_Roundtrip(t *testing.T) {
	repo, clientID := setupBillingDB(t)
	ctx := context.Background()

	amount := 2400.0
	event, err := domain.NewBillingEvent(clientID, domain.EventInvoiceSent, &amount,
		time.Date(2026, 5, 15, 14, 0, 0, 0, time.UTC), "May retainer")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, event))

	found, err := repo.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, clientID, found.ClientID)
	assert.Equal(t, domain.EventInvoiceSent, found.Type)
	require.NotNil(t, found.Amount)
	assert.Equal(t, 2400.0, *found.Amount)
	assert.Equal(t, time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), found.EventDate)
	assert.Equal(t, "May retainer", found.Description)
}

func TestSQLiteBillingEventRepository_FindByID_NotFound(t *testing.T) {
	repo, _ := setupBillingDB(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrBillingEventNotFound)
}

func TestSQLiteBillingEventRepository_FindByClientID(t *testing.T) {
	repo, clientID := setupBillingDB(t)
	ctx := context.Background()

	days := []time.Time{
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
	}
	for _, day := range days {
		event, err := domain.NewBillingEvent(clientID, domain.EventNote, nil, day, "check-in")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, event))
	}

	events, err := repo.FindByClientID(ctx, clientID, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, days[2], events[0].EventDate)
	assert.Equal(t, days[0], events[2].EventDate)
	// Optional fields stay absent.
	assert.Nil(t, events[0].Amount)

	limited, err := repo.FindByClientID(ctx, clientID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	other, err := repo.FindByClientID(ctx, uuid.New(), 0)
	require.NoError(t, err)
	assert.Empty(t, other)
}
