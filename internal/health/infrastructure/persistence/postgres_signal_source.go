package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSignalSource implements domain.SignalSource against the
// deployed PostgreSQL schema. The single path issues one query per
// aggregate kind for one client; the batch path issues one grouped
// query per aggregate kind for the whole set, so portfolio size never
// changes the query count.
type PostgresSignalSource struct {
	pool    *pgxpool.Pool
	costing CostingConfig
}

// NewPostgresSignalSource creates a new PostgreSQL signal source.
func NewPostgresSignalSource(pool *pgxpool.Pool, costing CostingConfig) *PostgresSignalSource {
	return &PostgresSignalSource{pool: pool, costing: costing}
}

// FetchSignals loads the activity signals for one client.
func (s *PostgresSignalSource) FetchSignals(ctx context.Context, clientID uuid.UUID, now time.Time) (domain.Signals, error) {
	var signals domain.Signals

	var lastContact *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT MAX(occurred_at) FROM communications WHERE client_id = $1`,
		clientID,
	).Scan(&lastContact)
	if err != nil {
		return domain.Signals{}, err
	}
	signals.LastContactAt = lastContact

	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'completed'),
		        COUNT(*) FILTER (WHERE status != 'completed' AND due_date IS NOT NULL AND due_date < $2)
		 FROM tasks
		 WHERE client_id = $1`,
		clientID, now,
	).Scan(&signals.Tasks.Total, &signals.Tasks.Completed, &signals.Tasks.Overdue)
	if err != nil {
		return domain.Signals{}, err
	}

	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM digests WHERE client_id = $1 AND period_start >= $2`,
		clientID, digestWindowStart(now),
	).Scan(&signals.RecentDigests)
	if err != nil {
		return domain.Signals{}, err
	}

	var budget *float64
	err = s.pool.QueryRow(ctx,
		`SELECT monthly_budget FROM clients WHERE id = $1`,
		clientID,
	).Scan(&budget)
	if err != nil && !database.IsNoRows(err) {
		return domain.Signals{}, err
	}
	if budget != nil {
		signals.Budget = domain.BudgetOf(*budget)
	}

	err = s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(e.minutes * COALESCE(m.hourly_rate, $3) / 60.0), 0)
		 FROM time_entries e
		 JOIN tasks t ON t.id = e.task_id
		 LEFT JOIN members m ON m.id = e.member_id
		 WHERE t.client_id = $1 AND e.entry_date >= $2`,
		clientID, costWindowStart(now), s.costing.rate(),
	).Scan(&signals.EstimatedCost)
	if err != nil {
		return domain.Signals{}, err
	}

	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM communications
		 WHERE client_id = $1 AND requires_followup AND followup_due IS NOT NULL AND followup_due < $2`,
		clientID, now,
	).Scan(&signals.OverdueFollowups)
	if err != nil {
		return domain.Signals{}, err
	}

	return signals, nil
}

// FetchSignalsBatch loads signals for many clients with six grouped
// queries, one per aggregate kind.
func (s *PostgresSignalSource) FetchSignalsBatch(ctx context.Context, clientIDs []uuid.UUID, now time.Time) (domain.SignalSet, error) {
	set := make(domain.SignalSet, len(clientIDs))
	if len(clientIDs) == 0 {
		return set, nil
	}

	patch := func(id uuid.UUID, apply func(*domain.Signals)) {
		signals := set[id]
		apply(&signals)
		set[id] = signals
	}

	rows, err := s.pool.Query(ctx,
		`SELECT client_id, MAX(occurred_at)
		 FROM communications
		 WHERE client_id = ANY($1)
		 GROUP BY client_id`,
		clientIDs,
	)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id uuid.UUID
		var last time.Time
		if err := rows.Scan(&id, &last); err != nil {
			rows.Close()
			return nil, err
		}
		contact := last
		patch(id, func(sig *domain.Signals) { sig.LastContactAt = &contact })
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx,
		`SELECT client_id,
		        COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'completed'),
		        COUNT(*) FILTER (WHERE status != 'completed' AND due_date IS NOT NULL AND due_date < $2)
		 FROM tasks
		 WHERE client_id = ANY($1)
		 GROUP BY client_id`,
		clientIDs, now,
	)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id uuid.UUID
		var counts domain.TaskCounts
		if err := rows.Scan(&id, &counts.Total, &counts.Completed, &counts.Overdue); err != nil {
			rows.Close()
			return nil, err
		}
		patch(id, func(sig *domain.Signals) { sig.Tasks = counts })
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx,
		`SELECT client_id, COUNT(*)
		 FROM digests
		 WHERE client_id = ANY($1) AND period_start >= $2
		 GROUP BY client_id`,
		clientIDs, digestWindowStart(now),
	)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id uuid.UUID
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			rows.Close()
			return nil, err
		}
		patch(id, func(sig *domain.Signals) { sig.RecentDigests = count })
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx,
		`SELECT id, monthly_budget FROM clients WHERE id = ANY($1)`,
		clientIDs,
	)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id uuid.UUID
		var budget *float64
		if err := rows.Scan(&id, &budget); err != nil {
			rows.Close()
			return nil, err
		}
		if budget != nil {
			amount := *budget
			patch(id, func(sig *domain.Signals) { sig.Budget = domain.BudgetOf(amount) })
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx,
		`SELECT t.client_id, COALESCE(SUM(e.minutes * COALESCE(m.hourly_rate, $3) / 60.0), 0)
		 FROM time_entries e
		 JOIN tasks t ON t.id = e.task_id
		 LEFT JOIN members m ON m.id = e.member_id
		 WHERE t.client_id = ANY($1) AND e.entry_date >= $2
		 GROUP BY t.client_id`,
		clientIDs, costWindowStart(now), s.costing.rate(),
	)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id uuid.UUID
		var cost float64
		if err := rows.Scan(&id, &cost); err != nil {
			rows.Close()
			return nil, err
		}
		patch(id, func(sig *domain.Signals) { sig.EstimatedCost = cost })
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx,
		`SELECT client_id, COUNT(*)
		 FROM communications
		 WHERE client_id = ANY($1) AND requires_followup AND followup_due IS NOT NULL AND followup_due < $2
		 GROUP BY client_id`,
		clientIDs, now,
	)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id uuid.UUID
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			rows.Close()
			return nil, err
		}
		patch(id, func(sig *domain.Signals) { sig.OverdueFollowups = count })
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return set, nil
}
