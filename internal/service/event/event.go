// Package event publishes resource change notifications to the message broker.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-api/pkg/messaging"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

const DefaultChannel = "clinic.events"

type Action string

const (
	Created Action = "created"
	Updated Action = "updated"
	Deleted Action = "deleted"
)

// Event is the message body published after every successful mutation
type Event struct {
	Type       string      `json:"type"`
	ID         uuid.UUID   `json:"id"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// Type joins a resource and an action, e.g. "user.created"
func Type(resource string, action Action) string {
	return resource + "." + string(action)
}

type Publisher interface {
	Publish(ctx context.Context, resource string, action Action, id uuid.UUID, payload interface{})
}

// BrokerPublisher hands events to a messaging.Broker. Failures are logged and counted, never returned.
type BrokerPublisher struct {
	broker  messaging.Broker
	channel string
	logger  zerolog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewPublisher(broker messaging.Broker, channel string, logger zerolog.Logger, m *metrics.Metrics) *BrokerPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &BrokerPublisher{
		broker:  broker,
		channel: channel,
		logger:  logger.With().Str("component", "events").Logger(),
		metrics: m,
		now:     time.Now,
	}
}

func (p *BrokerPublisher) Publish(ctx context.Context, resource string, action Action, id uuid.UUID, payload interface{}) {
	evt := Event{
		Type:       Type(resource, action),
		ID:         id,
		Payload:    payload,
		OccurredAt: p.now().UTC(),
	}

	result := "ok"
	if err := p.broker.Publish(ctx, p.channel, evt); err != nil {
		result = "error"
		p.logger.Warn().Err(err).
			Str("type", evt.Type).
			Str("id", id.String()).
			Msg("failed to publish event")
	} else {
		p.logger.Debug().Str("type", evt.Type).Str("id", id.String()).Msg("event published")
	}

	if p.metrics != nil {
		p.metrics.EventsPublished.WithLabelValues(evt.Type, result).Inc()
	}
}

// Nop discards events
type Nop struct{}

func (Nop) Publish(context.Context, string, Action, uuid.UUID, interface{}) {}
