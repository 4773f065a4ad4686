package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBillingEvent(t *testing.T) {
	clientID := uuid.New()
	amount := 1500.0

	event, err := NewBillingEvent(clientID, EventInvoiceSent, &amount,
		time.Date(2026, 5, 15, 16, 45, 0, 0, time.UTC), "  May retainer  ")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, clientID, event.ClientID)
	assert.Equal(t, EventInvoiceSent, event.Type)
	require.NotNil(t, event.Amount)
	assert.Equal(t, 1500.0, *event.Amount)
	// Event dates keep day granularity only.
	assert.Equal(t, time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), event.EventDate)
	assert.Equal(t, "May retainer", event.Description)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestNewBillingEvent_Validation(t *testing.T) {
	clientID := uuid.New()
	negative := -10.0

	tests := []struct {
		name      string
		eventType EventType
		amount    *float64
		wantErr   error
	}{
		{"unknown type", EventType("refund_issued"), nil, ErrInvalidEventType},
		{"negative amount", EventPaymentReceived, &negative, ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBillingEvent(clientID, tt.eventType, tt.amount, time.Time{}, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewBillingEvent_ZeroDateMeansToday(t *testing.T) {
	event, err := NewBillingEvent(uuid.New(), EventNote, nil, time.Time{}, "kickoff call")

	require.NoError(t, err)
	assert.Equal(t, DayOf(time.Now()), event.EventDate)
	assert.Nil(t, event.Amount)
}

func TestDayOf(t *testing.T) {
	in := time.Date(2026, 5, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), DayOf(in))
}
