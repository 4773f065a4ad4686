package persistence_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/pulso/internal/work/domain"
	"github.com/felixgeelhaar/pulso/internal/work/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupWorkDB(t *testing.T) (*sql.DB, uuid.UUID) {
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

	return db, clientID
}

func TestSQLiteTaskRepository_Roundtrip(t *testing.T) {
	db, clientID := setupWorkDB(t)
	repo := persistence.NewSQLiteTaskRepository(db)
	ctx := context.Background()

	task, err := domain.NewTask(clientID, "Technical audit", domain.PriorityUrgent)
	require.NoError(t, err)
	due := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	task.SetDueDate(&due)
	require.NoError(t, task.SetEstimatedMinutes(240))

	require.NoError(t, repo.Save(ctx, task))

	found, err := repo.FindByID(ctx, task.ID())
	require.NoError(t, err)
	assert.Equal(t, "Technical audit", found.Title())
	assert.Equal(t, domain.TaskPending, found.Status())
	assert.Equal(t, domain.PriorityUrgent, found.Priority())
	require.NotNil(t, found.DueDate())
	assert.Equal(t, due, *found.DueDate())
	require.NotNil(t, found.EstimatedMinutes())
	assert.Equal(t, 240, *found.EstimatedMinutes())
	assert.Nil(t, found.CompletedAt())

	// Complete and persist the transition.
	done := time.Date(2026, 4, 18, 16, 0, 0, 0, time.UTC)
	require.NoError(t, found.Complete(done))
	require.NoError(t, repo.Save(ctx, found))

	reloaded, err := repo.FindByID(ctx, task.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, reloaded.Status())
	require.NotNil(t, reloaded.CompletedAt())
	assert.Equal(t, done, *reloaded.CompletedAt())
}

func TestSQLiteTaskRepository_NotFound(t *testing.T) {
	db, _ := setupWorkDB(t)
	repo := persistence.NewSQLiteTaskRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestSQLiteTaskRepository_FindByClientID(t *testing.T) {
	db, clientID := setupWorkDB(t)
	repo := persistence.NewSQLiteTaskRepository(db)
	ctx := context.Background()

	open, _ := domain.NewTask(clientID, "open one", domain.PriorityMedium)
	done, _ := domain.NewTask(clientID, "done one", domain.PriorityMedium)
	require.NoError(t, done.Complete(time.Now()))
	require.NoError(t, repo.Save(ctx, open))
	require.NoError(t, repo.Save(ctx, done))

	all, err := repo.FindByClientID(ctx, clientID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	completed := domain.TaskCompleted
	onlyDone, err := repo.FindByClientID(ctx, clientID, &completed)
	require.NoError(t, err)
	require.Len(t, onlyDone, 1)
	assert.Equal(t, "done one", onlyDone[0].Title())
}

func TestSQLiteTaskRepository_FindOverdue(t *testing.T) {
	db, clientID := setupWorkDB(t)
	repo := persistence.NewSQLiteTaskRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	oldest := now.AddDate(0, 0, -9)
	recent := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 3)

	makeTask := func(title string, due time.Time, completed bool) {
		task, err := domain.NewTask(clientID, title, domain.PriorityMedium)
		require.NoError(t, err)
		task.SetDueDate(&due)
		if completed {
			require.NoError(t, task.Complete(now))
		}
		require.NoError(t, repo.Save(ctx, task))
	}

	makeTask("overdue recent", recent, false)
	makeTask("overdue oldest", oldest, false)
	makeTask("due later", future, false)
	makeTask("finished late", oldest, true)

	overdue, err := repo.FindOverdue(ctx, now)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, "overdue oldest", overdue[0].Title(), "most overdue first")
	assert.Equal(t, "overdue recent", overdue[1].Title())

	count, err := repo.CountOpenByClient(ctx, clientID)
	require.NoError(t, err)
	assert.Equal(t, 3, count, "completed tasks are not open")
}

func TestSQLiteMemberRepository_Roundtrip(t *testing.T) {
	db, _ := setupWorkDB(t)
	repo := persistence.NewSQLiteMemberRepository(db)
	ctx := context.Background()

	rate := 55.0
	member, err := domain.NewMember("Dana", "dana@pulso.dev", &rate)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, member))

	found, err := repo.FindByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana", found.Name)
	require.NotNil(t, found.HourlyRate)
	assert.Equal(t, 55.0, *found.HourlyRate)

	byEmail, err := repo.FindByEmail(ctx, "dana@pulso.dev")
	require.NoError(t, err)
	assert.Equal(t, member.ID, byEmail.ID)

	_, err = repo.FindByEmail(ctx, "nobody@pulso.dev")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)

	unrated, err := domain.NewMember("Alex", "alex@pulso.dev", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, unrated))

	members, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Alex", members[0].Name)
	assert.Nil(t, members[0].HourlyRate)
	assert.Equal(t, "Dana", members[1].Name)
}

func TestSQLiteTimeEntryRepository_Roundtrip(t *testing.T) {
	db, clientID := setupWorkDB(t)
	taskRepo := persistence.NewSQLiteTaskRepository(db)
	memberRepo := persistence.NewSQLiteMemberRepository(db)
	entryRepo := persistence.NewSQLiteTimeEntryRepository(db)
	ctx := context.Background()

	task, _ := domain.NewTask(clientID, "audit", domain.PriorityMedium)
	require.NoError(t, taskRepo.Save(ctx, task))
	member, _ := domain.NewMember("Dana", "dana@pulso.dev", nil)
	require.NoError(t, memberRepo.Save(ctx, member))

	first, err := domain.NewTimeEntry(task.ID(), member.ID, 60, time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC), "crawl setup")
	require.NoError(t, err)
	second, err := domain.NewTimeEntry(task.ID(), member.ID, 45, time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	require.NoError(t, entryRepo.Save(ctx, first))
	require.NoError(t, entryRepo.Save(ctx, second))

	entries, err := entryRepo.FindByTaskID(ctx, task.ID())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 45, entries[0].Minutes, "newest entry first")
	assert.Equal(t, time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), entries[0].EntryDate)
	assert.Equal(t, "crawl setup", entries[1].Note)
}
