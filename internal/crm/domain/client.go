package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/pulso/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrClientEmptyName       = errors.New("client name cannot be empty")
	ErrClientInvalidContract = errors.New("invalid contract type")
	ErrClientNegativeBudget  = errors.New("monthly budget cannot be negative")
	ErrClientNotActive       = errors.New("client is not active")
	ErrClientNotPaused       = errors.New("client is not paused")
	ErrClientFinished        = errors.New("client engagement is finished")
)

// ContractType represents how a client engagement is billed.
type ContractType string

const (
	ContractMonthly ContractType = "monthly"
	ContractOneTime ContractType = "one_time"
)

// IsValid checks if the contract type is valid.
func (c ContractType) IsValid() bool {
	switch c {
	case ContractMonthly, ContractOneTime:
		return true
	default:
		return false
	}
}

// ClientStatus represents the lifecycle state of a client engagement.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientPaused   ClientStatus = "paused"
	ClientFinished ClientStatus = "finished"
)

// IsValid checks if the status is valid.
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientActive, ClientPaused, ClientFinished:
		return true
	default:
		return false
	}
}

// DefaultCurrency is used when a client is created without one.
const DefaultCurrency = "EUR"

// Client represents an agency client engagement.
type Client struct {
	sharedDomain.BaseEntity
	name            string
	email           string
	company         string
	contractType    ContractType
	status          ClientStatus
	currency        string
	monthlyBudget   *float64
	holdedContactID string
}

// NewClient creates a new active client.
func NewClient(name, email, company string, contractType ContractType) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrClientEmptyName
	}

	if contractType == "" {
		contractType = ContractMonthly
	}
	if !contractType.IsValid() {
		return nil, ErrClientInvalidContract
	}

	return &Client{
		BaseEntity:   sharedDomain.NewBaseEntity(),
		name:         name,
		email:        strings.TrimSpace(email),
		company:      strings.TrimSpace(company),
		contractType: contractType,
		status:       ClientActive,
		currency:     DefaultCurrency,
	}, nil
}

// Getters
func (c *Client) Name() string               { return c.name }
func (c *Client) Email() string              { return c.email }
func (c *Client) Company() string            { return c.company }
func (c *Client) ContractType() ContractType { return c.contractType }
func (c *Client) Status() ClientStatus       { return c.status }
func (c *Client) Currency() string           { return c.currency }
func (c *Client) HoldedContactID() string    { return c.holdedContactID }
func (c *Client) IsActive() bool             { return c.status == ClientActive }

// MonthlyBudget returns the budget and whether one is set.
func (c *Client) MonthlyBudget() (float64, bool) {
	if c.monthlyBudget == nil {
		return 0, false
	}
	return *c.monthlyBudget, true
}

// Rename updates the client name.
func (c *Client) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrClientEmptyName
	}
	c.name = name
	c.Touch()
	return nil
}

// SetEmail updates the contact email.
func (c *Client) SetEmail(email string) {
	c.email = strings.TrimSpace(email)
	c.Touch()
}

// SetCompany updates the company name.
func (c *Client) SetCompany(company string) {
	c.company = strings.TrimSpace(company)
	c.Touch()
}

// SetMonthlyBudget sets the monthly budget. A zero budget is a valid,
// explicit budget; use ClearMonthlyBudget to remove one.
func (c *Client) SetMonthlyBudget(amount float64) error {
	if amount < 0 {
		return ErrClientNegativeBudget
	}
	c.monthlyBudget = &amount
	c.Touch()
	return nil
}

// ClearMonthlyBudget removes the budget.
func (c *Client) ClearMonthlyBudget() {
	c.monthlyBudget = nil
	c.Touch()
}

// SetCurrency updates the billing currency.
func (c *Client) SetCurrency(currency string) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	c.currency = currency
	c.Touch()
}

// LinkHoldedContact associates the client with a Holded contact.
func (c *Client) LinkHoldedContact(contactID string) {
	c.holdedContactID = strings.TrimSpace(contactID)
	c.Touch()
}

// Pause suspends an active engagement.
func (c *Client) Pause() error {
	if c.status == ClientFinished {
		return ErrClientFinished
	}
	if c.status != ClientActive {
		return ErrClientNotActive
	}
	c.status = ClientPaused
	c.Touch()
	return nil
}

// Reactivate resumes a paused engagement.
func (c *Client) Reactivate() error {
	if c.status == ClientFinished {
		return ErrClientFinished
	}
	if c.status != ClientPaused {
		return ErrClientNotPaused
	}
	c.status = ClientActive
	c.Touch()
	return nil
}

// Finish closes the engagement. Finished clients cannot be reactivated.
func (c *Client) Finish() error {
	if c.status == ClientFinished {
		return ErrClientFinished
	}
	c.status = ClientFinished
	c.Touch()
	return nil
}

// RehydrateClient recreates a client from persisted state.
func RehydrateClient(
	id uuid.UUID,
	name string,
	email string,
	company string,
	contractType ContractType,
	status ClientStatus,
	currency string,
	monthlyBudget *float64,
	holdedContactID string,
	createdAt time.Time,
	updatedAt time.Time,
) *Client {
	return &Client{
		BaseEntity:      sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		name:            name,
		email:           email,
		company:         company,
		contractType:    contractType,
		status:          status,
		currency:        currency,
		monthlyBudget:   monthlyBudget,
		holdedContactID: holdedContactID,
	}
}
