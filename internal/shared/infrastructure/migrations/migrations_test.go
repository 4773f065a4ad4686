package migrations_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestRunSQLiteMigrations(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, migrations.RunSQLiteMigrations(ctx, db))

	tables := []string{
		"clients",
		"communications",
		"members",
		"tasks",
		"time_entries",
		"digests",
		"insights",
		"billing_events",
	}

	for _, table := range tables {
		t.Run(table, func(t *testing.T) {
			var name string
			err := db.QueryRow(
				`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
			).Scan(&name)
			require.NoError(t, err, "table %s should exist", table)
			assert.Equal(t, table, name)
		})
	}
}

func TestRunSQLiteMigrations_Idempotent(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, migrations.RunSQLiteMigrations(ctx, db))
	require.NoError(t, migrations.RunSQLiteMigrations(ctx, db), "second run must be a no-op")
}
