package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SignalSource fetches activity signals for scoring. Implementations
// exist per database backend; the batch variant must return signals
// that match what the single variant would return for each client at
// the same instant, using a bounded number of queries regardless of
// how many clients are evaluated.
type SignalSource interface {
	// FetchSignals loads the signals for one client as of now.
	FetchSignals(ctx context.Context, clientID uuid.UUID, now time.Time) (Signals, error)

	// FetchSignalsBatch loads signals for many clients as of now.
	// Clients without recorded activity may be absent from the result;
	// SignalSet.For resolves them to the zero Signals.
	FetchSignalsBatch(ctx context.Context, clientIDs []uuid.UUID, now time.Time) (SignalSet, error)
}

// ClientCatalog resolves client references for the health engine
// without coupling it to the CRM aggregate.
type ClientCatalog interface {
	// Find returns the reference for one client, or ErrClientNotFound.
	Find(ctx context.Context, clientID uuid.UUID) (ClientRef, error)

	// ListActive returns references for all clients in active status,
	// the population a portfolio sweep evaluates.
	ListActive(ctx context.Context) ([]ClientRef, error)
}
