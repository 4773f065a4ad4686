package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/pulso/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrCommunicationEmptySummary = errors.New("communication summary cannot be empty")
	ErrCommunicationInvalidChan  = errors.New("invalid communication channel")
	ErrCommunicationNoFollowup   = errors.New("communication does not require a follow-up")
)

// Channel represents the medium of a client touchpoint.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelCall     Channel = "call"
	ChannelMeeting  Channel = "meeting"
	ChannelWhatsapp Channel = "whatsapp"
	ChannelSlack    Channel = "slack"
	ChannelOther    Channel = "other"
)

// IsValid checks if the channel is valid.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelCall, ChannelMeeting, ChannelWhatsapp, ChannelSlack, ChannelOther:
		return true
	default:
		return false
	}
}

// Direction indicates who initiated the touchpoint.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// IsValid checks if the direction is valid.
func (d Direction) IsValid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// Communication is a logged touchpoint with a client. Touchpoints that
// require a follow-up stay on the follow-up ledger until resolved.
type Communication struct {
	sharedDomain.BaseEntity
	clientID         uuid.UUID
	channel          Channel
	direction        Direction
	subject          string
	summary          string
	occurredAt       time.Time
	requiresFollowup bool
	followupDue      *time.Time
}

// NewCommunication logs a touchpoint with a client.
func NewCommunication(clientID uuid.UUID, channel Channel, direction Direction, summary string, occurredAt time.Time) (*Communication, error) {
	if !channel.IsValid() {
		return nil, ErrCommunicationInvalidChan
	}
	if direction == "" {
		direction = DirectionOutbound
	}
	if !direction.IsValid() {
		direction = DirectionOutbound
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, ErrCommunicationEmptySummary
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	return &Communication{
		BaseEntity: sharedDomain.NewBaseEntity(),
		clientID:   clientID,
		channel:    channel,
		direction:  direction,
		summary:    summary,
		occurredAt: occurredAt.UTC(),
	}, nil
}

// Getters
func (c *Communication) ClientID() uuid.UUID    { return c.clientID }
func (c *Communication) Channel() Channel       { return c.channel }
func (c *Communication) Direction() Direction   { return c.direction }
func (c *Communication) Subject() string        { return c.subject }
func (c *Communication) Summary() string        { return c.summary }
func (c *Communication) OccurredAt() time.Time  { return c.occurredAt }
func (c *Communication) RequiresFollowup() bool { return c.requiresFollowup }
func (c *Communication) FollowupDue() *time.Time {
	return c.followupDue
}

// SetSubject sets an optional subject line.
func (c *Communication) SetSubject(subject string) {
	c.subject = strings.TrimSpace(subject)
	c.Touch()
}

// FlagFollowup marks the touchpoint as needing a follow-up, optionally
// with a due date.
func (c *Communication) FlagFollowup(due *time.Time) {
	c.requiresFollowup = true
	if due != nil {
		d := due.UTC()
		c.followupDue = &d
	}
	c.Touch()
}

// ResolveFollowup clears the follow-up flag.
func (c *Communication) ResolveFollowup() error {
	if !c.requiresFollowup {
		return ErrCommunicationNoFollowup
	}
	c.requiresFollowup = false
	c.followupDue = nil
	c.Touch()
	return nil
}

// IsFollowupOverdue reports whether the follow-up is unresolved and past due.
func (c *Communication) IsFollowupOverdue(now time.Time) bool {
	return c.requiresFollowup && c.followupDue != nil && c.followupDue.Before(now)
}

// RehydrateCommunication recreates a communication from persisted state.
func RehydrateCommunication(
	id uuid.UUID,
	clientID uuid.UUID,
	channel Channel,
	direction Direction,
	subject string,
	summary string,
	occurredAt time.Time,
	requiresFollowup bool,
	followupDue *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *Communication {
	return &Communication{
		BaseEntity:       sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		clientID:         clientID,
		channel:          channel,
		direction:        direction,
		subject:          subject,
		summary:          summary,
		occurredAt:       occurredAt,
		requiresFollowup: requiresFollowup,
		followupDue:      followupDue,
	}
}
