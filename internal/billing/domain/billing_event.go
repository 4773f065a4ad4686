package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrBillingEventNotFound is returned when no billing event exists
	// for the given identifier.
	ErrBillingEventNotFound = errors.New("billing event not found")

	// ErrInvalidEventType is returned for event types outside the
	// known set.
	ErrInvalidEventType = errors.New("invalid billing event type")

	// ErrNegativeAmount is returned when an event carries a negative
	// amount.
	ErrNegativeAmount = errors.New("billing event amount cannot be negative")
)

// EventType classifies what happened on the billing side of an account.
type EventType string

const (
	EventInvoiceSent     EventType = "invoice_sent"
	EventPaymentReceived EventType = "payment_received"
	EventReminderSent    EventType = "reminder_sent"
	EventNote            EventType = "note"
)

// IsValid reports whether the event type is a known value.
func (t EventType) IsValid() bool {
	switch t {
	case EventInvoiceSent, EventPaymentReceived, EventReminderSent, EventNote:
		return true
	}
	return false
}

// BillingEvent is an append-only journal entry for a client's billing
// history. Events are immutable once recorded; corrections are new
// events, so there is no updated_at.
type BillingEvent struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Type        EventType
	Amount      *float64
	EventDate   time.Time
	Description string
	CreatedAt   time.Time
}

// NewBillingEvent records a billing event. The amount is optional
// because notes and reminders usually have none. A zero event date
// means today. Dates keep day granularity only.
func NewBillingEvent(clientID uuid.UUID, eventType EventType, amount *float64, eventDate time.Time, description string) (*BillingEvent, error) {
	if !eventType.IsValid() {
		return nil, ErrInvalidEventType
	}
	if amount != nil && *amount < 0 {
		return nil, ErrNegativeAmount
	}

	now := time.Now().UTC()
	if eventDate.IsZero() {
		eventDate = now
	}
	eventDate = DayOf(eventDate)

	return &BillingEvent{
		ID:          uuid.New(),
		ClientID:    clientID,
		Type:        eventType,
		Amount:      amount,
		EventDate:   eventDate,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
	}, nil
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
