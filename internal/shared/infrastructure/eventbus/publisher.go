package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
)

// Routing keys for the events Pulso emits. Downstream automation binds
// queues to these on the topic exchange.
const (
	// RoutingKeyHealthAtRisk is emitted by the sweep worker for every
	// client whose health score classifies as at risk.
	RoutingKeyHealthAtRisk = "pulso.health.at_risk"

	// RoutingKeyInsightCreated is emitted when the insight generator
	// records a new recommendation.
	RoutingKeyInsightCreated = "pulso.insights.created"
)

// Publisher defines the interface for publishing events to a message broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// PublishJSON marshals the payload and publishes it under the routing key.
func PublishJSON(ctx context.Context, p Publisher, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return p.Publish(ctx, routingKey, body)
}
