package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound        = errors.New("client not found")
	ErrCommunicationNotFound = errors.New("communication not found")
)

// ClientRepository defines the interface for client persistence.
type ClientRepository interface {
	// Save persists a client (create or update).
	Save(ctx context.Context, client *Client) error

	// FindByID finds a client by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByHoldedContactID finds the client linked to a Holded contact.
	FindByHoldedContactID(ctx context.Context, contactID string) (*Client, error)

	// List returns clients, optionally filtered by status, ordered by name.
	List(ctx context.Context, status *ClientStatus) ([]*Client, error)
}

// CommunicationRepository defines the interface for touchpoint persistence.
type CommunicationRepository interface {
	// Save persists a communication (create or update).
	Save(ctx context.Context, comm *Communication) error

	// FindByID finds a communication by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Communication, error)

	// FindByClientID returns a client's touchpoints, most recent first.
	FindByClientID(ctx context.Context, clientID uuid.UUID, limit int) ([]*Communication, error)

	// FindOverdueFollowups returns unresolved follow-ups due before now,
	// oldest due date first.
	FindOverdueFollowups(ctx context.Context, now time.Time) ([]*Communication, error)
}
