package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/pkg/messaging"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

type failingBroker struct{ messaging.Broker }

func (failingBroker) Publish(context.Context, string, interface{}) error {
	return errors.New("broker down")
}

func TestPublishDeliversEvent(t *testing.T) {
	broker := messaging.NewMemoryBroker()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	msgs, err := broker.Subscribe(ctx, DefaultChannel)
	require.NoError(t, err)

	m := metrics.New("test")
	pub := NewPublisher(broker, "", zerolog.Nop(), m)
	id := uuid.New()
	pub.Publish(ctx, "category", Created, id, map[string]string{"name": "antibiotics"})

	select {
	case raw := <-msgs:
		var evt Event
		require.NoError(t, json.Unmarshal(raw, &evt))
		assert.Equal(t, "category.created", evt.Type)
		assert.Equal(t, id, evt.ID)
		assert.False(t, evt.OccurredAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("category.created", "ok")))
}

func TestPublishFailureIsSwallowed(t *testing.T) {
	m := metrics.New("test")
	pub := NewPublisher(failingBroker{}, DefaultChannel, zerolog.Nop(), m)

	assert.NotPanics(t, func() {
		pub.Publish(context.Background(), "user", Deleted, uuid.New(), nil)
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("user.deleted", "error")))
}
