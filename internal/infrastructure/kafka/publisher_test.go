package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fulfillment-api/internal/domain/event"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/kafka"
)

type fakeWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestPublish_EnvelopeYClave(t *testing.T) {
	w := &fakeWriter{}
	p := kafka.NewPublisherWithWriter(w, zerolog.Nop())
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), event.Event{
		Type: event.TypeOrderStatusChanged, Key: "o-1", OccurredAt: at,
		Payload: event.OrderStatusChangedPayload{OrderID: "o-1", From: "PENDING", To: "SHIPPED", Carrier: "UPS"},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "o-1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, event.TypeOrderStatusChanged, string(msg.Headers[0].Value))

	var env struct {
		Type       string                          `json:"type"`
		OccurredAt time.Time                       `json:"occurred_at"`
		Payload    event.OrderStatusChangedPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, event.TypeOrderStatusChanged, env.Type)
	assert.True(t, at.Equal(env.OccurredAt))
	assert.Equal(t, "SHIPPED", env.Payload.To)
	assert.Equal(t, "UPS", env.Payload.Carrier)
}

func TestPublish_ErrorDelBroker(t *testing.T) {
	p := kafka.NewPublisherWithWriter(&fakeWriter{err: errors.New("leader not available")}, zerolog.Nop())
	err := p.Publish(context.Background(), event.Event{Type: event.TypeOrderCreated, Key: "o-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestEncode_PayloadNoSerializable(t *testing.T) {
	_, err := kafka.Encode(event.Event{Type: "x", Payload: make(chan int)})
	assert.Error(t, err)
}
