package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const (
	sqliteTimeFormat = time.RFC3339
	sqliteDateFormat = "2006-01-02"
)

// SQLiteSignalSource implements domain.SignalSource for local mode.
// Timestamps live as RFC 3339 UTC strings and day-granularity fields as
// YYYY-MM-DD strings, so lexicographic comparison matches chronological
// order in every query below.
type SQLiteSignalSource struct {
	db      *sql.DB
	costing CostingConfig
}

// NewSQLiteSignalSource creates a new SQLite signal source.
func NewSQLiteSignalSource(db *sql.DB, costing CostingConfig) *SQLiteSignalSource {
	return &SQLiteSignalSource{db: db, costing: costing}
}

// FetchSignals loads the activity signals for one client.
func (s *SQLiteSignalSource) FetchSignals(ctx context.Context, clientID uuid.UUID, now time.Time) (domain.Signals, error) {
	var signals domain.Signals

	id := clientID.String()
	nowStr := now.UTC().Format(sqliteTimeFormat)

	var lastContact sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(occurred_at) FROM communications WHERE client_id = ?`, id,
	).Scan(&lastContact)
	if err != nil {
		return domain.Signals{}, err
	}
	if lastContact.Valid {
		contact, err := time.Parse(sqliteTimeFormat, lastContact.String)
		if err != nil {
			return domain.Signals{}, fmt.Errorf("parse last contact: %w", err)
		}
		signals.LastContactAt = &contact
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status != 'completed' AND due_date IS NOT NULL AND due_date < ? THEN 1 ELSE 0 END), 0)
		 FROM tasks
		 WHERE client_id = ?`,
		nowStr, id,
	).Scan(&signals.Tasks.Total, &signals.Tasks.Completed, &signals.Tasks.Overdue)
	if err != nil {
		return domain.Signals{}, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM digests WHERE client_id = ? AND period_start >= ?`,
		id, digestWindowStart(now).Format(sqliteDateFormat),
	).Scan(&signals.RecentDigests)
	if err != nil {
		return domain.Signals{}, err
	}

	var budget sql.NullFloat64
	err = s.db.QueryRowContext(ctx,
		`SELECT monthly_budget FROM clients WHERE id = ?`, id,
	).Scan(&budget)
	if err != nil && !database.IsNoRows(err) {
		return domain.Signals{}, err
	}
	if budget.Valid {
		signals.Budget = domain.BudgetOf(budget.Float64)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(e.minutes * COALESCE(m.hourly_rate, ?) / 60.0), 0)
		 FROM time_entries e
		 JOIN tasks t ON t.id = e.task_id
		 LEFT JOIN members m ON m.id = e.member_id
		 WHERE t.client_id = ? AND e.entry_date >= ?`,
		s.costing.rate(), id, costWindowStart(now).Format(sqliteDateFormat),
	).Scan(&signals.EstimatedCost)
	if err != nil {
		return domain.Signals{}, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM communications
		 WHERE client_id = ? AND requires_followup = 1 AND followup_due IS NOT NULL AND followup_due < ?`,
		id, nowStr,
	).Scan(&signals.OverdueFollowups)
	if err != nil {
		return domain.Signals{}, err
	}

	return signals, nil
}

// FetchSignalsBatch loads signals for many clients with six grouped
// queries, one per aggregate kind.
func (s *SQLiteSignalSource) FetchSignalsBatch(ctx context.Context, clientIDs []uuid.UUID, now time.Time) (domain.SignalSet, error) {
	set := make(domain.SignalSet, len(clientIDs))
	if len(clientIDs) == 0 {
		return set, nil
	}

	placeholders := inPlaceholders(len(clientIDs))
	idArgs := make([]any, len(clientIDs))
	for i, id := range clientIDs {
		idArgs[i] = id.String()
	}
	nowStr := now.UTC().Format(sqliteTimeFormat)

	patch := func(id uuid.UUID, apply func(*domain.Signals)) {
		signals := set[id]
		apply(&signals)
		set[id] = signals
	}

	err := s.eachRow(ctx,
		`SELECT client_id, MAX(occurred_at)
		 FROM communications
		 WHERE client_id IN (`+placeholders+`)
		 GROUP BY client_id`,
		idArgs,
		func(rows *sql.Rows) error {
			var rawID string
			var last sql.NullString
			if err := rows.Scan(&rawID, &last); err != nil {
				return err
			}
			id, err := uuid.Parse(rawID)
			if err != nil {
				return fmt.Errorf("parse client id: %w", err)
			}
			if !last.Valid {
				return nil
			}
			contact, err := time.Parse(sqliteTimeFormat, last.String)
			if err != nil {
				return fmt.Errorf("parse last contact: %w", err)
			}
			patch(id, func(sig *domain.Signals) { sig.LastContactAt = &contact })
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	taskArgs := append([]any{nowStr}, idArgs...)
	err = s.eachRow(ctx,
		`SELECT client_id,
		        COUNT(*),
		        COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status != 'completed' AND due_date IS NOT NULL AND due_date < ? THEN 1 ELSE 0 END), 0)
		 FROM tasks
		 WHERE client_id IN (`+placeholders+`)
		 GROUP BY client_id`,
		taskArgs,
		func(rows *sql.Rows) error {
			var rawID string
			var counts domain.TaskCounts
			if err := rows.Scan(&rawID, &counts.Total, &counts.Completed, &counts.Overdue); err != nil {
				return err
			}
			id, err := uuid.Parse(rawID)
			if err != nil {
				return fmt.Errorf("parse client id: %w", err)
			}
			patch(id, func(sig *domain.Signals) { sig.Tasks = counts })
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	digestArgs := append(append([]any{}, idArgs...), digestWindowStart(now).Format(sqliteDateFormat))
	err = s.eachRow(ctx,
		`SELECT client_id, COUNT(*)
		 FROM digests
		 WHERE client_id IN (`+placeholders+`) AND period_start >= ?
		 GROUP BY client_id`,
		digestArgs,
		func(rows *sql.Rows) error {
			var rawID string
			var count int
			if err := rows.Scan(&rawID, &count); err != nil {
				return err
			}
			id, err := uuid.Parse(rawID)
			if err != nil {
				return fmt.Errorf("parse client id: %w", err)
			}
			patch(id, func(sig *domain.Signals) { sig.RecentDigests = count })
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	err = s.eachRow(ctx,
		`SELECT id, monthly_budget FROM clients WHERE id IN (`+placeholders+`)`,
		idArgs,
		func(rows *sql.Rows) error {
			var rawID string
			var budget sql.NullFloat64
			if err := rows.Scan(&rawID, &budget); err != nil {
				return err
			}
			id, err := uuid.Parse(rawID)
			if err != nil {
				return fmt.Errorf("parse client id: %w", err)
			}
			if budget.Valid {
				patch(id, func(sig *domain.Signals) { sig.Budget = domain.BudgetOf(budget.Float64) })
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	costArgs := append([]any{s.costing.rate()}, idArgs...)
	costArgs = append(costArgs, costWindowStart(now).Format(sqliteDateFormat))
	err = s.eachRow(ctx,
		`SELECT t.client_id, COALESCE(SUM(e.minutes * COALESCE(m.hourly_rate, ?) / 60.0), 0)
		 FROM time_entries e
		 JOIN tasks t ON t.id = e.task_id
		 LEFT JOIN members m ON m.id = e.member_id
		 WHERE t.client_id IN (`+placeholders+`) AND e.entry_date >= ?
		 GROUP BY t.client_id`,
		costArgs,
		func(rows *sql.Rows) error {
			var rawID string
			var cost float64
			if err := rows.Scan(&rawID, &cost); err != nil {
				return err
			}
			id, err := uuid.Parse(rawID)
			if err != nil {
				return fmt.Errorf("parse client id: %w", err)
			}
			patch(id, func(sig *domain.Signals) { sig.EstimatedCost = cost })
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	followupArgs := append(append([]any{}, idArgs...), nowStr)
	err = s.eachRow(ctx,
		`SELECT client_id, COUNT(*)
		 FROM communications
		 WHERE client_id IN (`+placeholders+`) AND requires_followup = 1 AND followup_due IS NOT NULL AND followup_due < ?
		 GROUP BY client_id`,
		followupArgs,
		func(rows *sql.Rows) error {
			var rawID string
			var count int
			if err := rows.Scan(&rawID, &count); err != nil {
				return err
			}
			id, err := uuid.Parse(rawID)
			if err != nil {
				return fmt.Errorf("parse client id: %w", err)
			}
			patch(id, func(sig *domain.Signals) { sig.OverdueFollowups = count })
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	return set, nil
}

// eachRow runs a query and applies scan to every row.
func (s *SQLiteSignalSource) eachRow(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// inPlaceholders builds the "?,?,...,?" list for an IN clause.
func inPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
