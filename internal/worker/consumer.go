package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-api/internal/email"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/event"
	"github.com/jwalitptl/clinic-api/pkg/messaging"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

var userCreated = event.Type("user", event.Created)

// message mirrors event.Event with the payload left undecoded
type message struct {
	Type    string          `json:"type"`
	ID      uuid.UUID       `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// Consumer reads resource events from the broker and reacts to the ones it knows
type Consumer struct {
	broker  messaging.Broker
	channel string
	mailer  email.Service
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewConsumer(broker messaging.Broker, channel string, mailer email.Service, logger zerolog.Logger, m *metrics.Metrics) *Consumer {
	if channel == "" {
		channel = event.DefaultChannel
	}
	return &Consumer{
		broker:  broker,
		channel: channel,
		mailer:  mailer,
		logger:  logger.With().Str("component", "worker").Logger(),
		metrics: m,
	}
}

// Run blocks until ctx is cancelled or the subscription closes
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.broker.Subscribe(ctx, c.channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", c.channel, err)
	}
	c.logger.Info().Str("channel", c.channel).Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("Worker shutting down")
			return nil
		case raw, ok := <-msgs:
			if !ok {
				return nil
			}
			c.handle(ctx, raw)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, raw []byte) {
	var msg message
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.logger.Warn().Err(err).Msg("Dropping malformed event")
		c.metrics.EventsConsumed.WithLabelValues("unknown", "error").Inc()
		return
	}

	result := "ok"
	if err := c.dispatch(ctx, msg); err != nil {
		result = "error"
		c.logger.Error().Err(err).Str("type", msg.Type).Str("id", msg.ID.String()).Msg("Error processing event")
	}
	c.metrics.EventsConsumed.WithLabelValues(msg.Type, result).Inc()
}

func (c *Consumer) dispatch(ctx context.Context, msg message) error {
	switch msg.Type {
	case userCreated:
		var u model.User
		if err := json.Unmarshal(msg.Payload, &u); err != nil {
			return fmt.Errorf("failed to decode user payload: %w", err)
		}
		return c.mailer.SendWelcome(ctx, u.Email, u.Name)
	default:
		c.logger.Debug().Str("type", msg.Type).Str("id", msg.ID.String()).Msg("Event received")
		return nil
	}
}
