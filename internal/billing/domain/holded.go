package domain

import "context"

// HoldedContact is the slice of a Holded contact the sync cares about.
type HoldedContact struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	VATNumber string
}

// ContactDirectory lists contacts from the external accounting system.
// The Holded HTTP client implements it; the sync only needs reads.
type ContactDirectory interface {
	ListContacts(ctx context.Context) ([]HoldedContact, error)
}
