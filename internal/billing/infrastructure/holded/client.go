package holded

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/pulso/internal/billing/domain"
	"github.com/felixgeelhaar/pulso/pkg/observability"
	"github.com/sony/gobreaker/v2"
)

const (
	// DefaultBaseURL is the public Holded API root.
	DefaultBaseURL = "https://api.holded.com/api"

	contactsPath = "/invoicing/v1/contacts"

	requestTimeout   = 30 * time.Second
	breakerMaxHalf   = 3
	breakerInterval  = 10 * time.Second
	breakerCooldown  = 30 * time.Second
	breakerTripAfter = 5
)

// APIError is a non-2xx response from the Holded API.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("holded api error %d: %s", e.StatusCode, e.Detail)
}

// Client talks to the Holded invoicing API. Requests authenticate with
// an API key in the "key" header and run through a circuit breaker so
// a flapping integration cannot stall callers for long.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
	metrics    observability.Metrics
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL points the client at a different API root. Tests use it
// to target an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a Holded API client.
func NewClient(apiKey string, logger *slog.Logger, metrics observability.Metrics, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}

	c := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		logger:     logger,
		metrics:    metrics,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "holded",
		MaxRequests: breakerMaxHalf,
		Interval:    breakerInterval,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return c
}

// contactPayload is the wire shape of a Holded contact, reduced to the
// fields the sync reads.
type contactPayload struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	VATNumber string `json:"vatnumber,omitempty"`
}

func (p contactPayload) toDomain() domain.HoldedContact {
	return domain.HoldedContact{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		VATNumber: p.VATNumber,
	}
}

// ListContacts returns all contacts visible to the API key.
func (c *Client) ListContacts(ctx context.Context) ([]domain.HoldedContact, error) {
	body, err := c.request(ctx, http.MethodGet, contactsPath, nil)
	if err != nil {
		return nil, err
	}

	var payloads []contactPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("decode holded contacts: %w", err)
	}

	contacts := make([]domain.HoldedContact, len(payloads))
	for i, p := range payloads {
		contacts[i] = p.toDomain()
	}
	return contacts, nil
}

// CreateContact creates a contact in Holded and returns it with the
// assigned id.
func (c *Client) CreateContact(ctx context.Context, contact domain.HoldedContact) (domain.HoldedContact, error) {
	body, err := c.request(ctx, http.MethodPost, contactsPath, contactPayload{
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		VATNumber: contact.VATNumber,
	})
	if err != nil {
		return domain.HoldedContact{}, err
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return domain.HoldedContact{}, fmt.Errorf("decode holded contact: %w", err)
	}

	contact.ID = created.ID
	return contact, nil
}

// TestConnection reports whether the API key can list contacts.
func (c *Client) TestConnection(ctx context.Context) bool {
	_, err := c.request(ctx, http.MethodGet, contactsPath, nil)
	return err == nil
}

func (c *Client) request(ctx context.Context, method, path string, payload any) ([]byte, error) {
	c.metrics.Counter(observability.MetricHoldedRequests, 1,
		observability.T("method", method))

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, method, path, payload)
	})
	if err != nil {
		c.metrics.Counter(observability.MetricHoldedErrors, 1,
			observability.T("method", method))
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode holded payload: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		detail := string(body)
		if len(detail) > 500 {
			detail = detail[:500]
		}
		c.logger.Error("holded request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: detail}
	}

	return body, nil
}
