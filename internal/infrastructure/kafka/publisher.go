// Package kafka publica los eventos de dominio del fulfillment en un tópico de Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Fulfillment-api/internal/domain/event"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// MessageWriter lo implementa *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope formato JSON del valor de cada mensaje.
type Envelope struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher publicador síncrono: cada Publish espera el ack del broker (o el timeout del ctx).
// Key = ID de la entidad; el balanceo Hash mantiene el orden de eventos por orden/material.
type Publisher struct {
	w       MessageWriter
	log     zerolog.Logger
	timeout time.Duration
}

// NewPublisher construye el publicador sobre un kafka.Writer.
func NewPublisher(brokers []string, topic string, log zerolog.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
	return NewPublisherWithWriter(w, log)
}

// NewPublisherWithWriter permite inyectar el writer (pruebas).
func NewPublisherWithWriter(w MessageWriter, log zerolog.Logger) *Publisher {
	return &Publisher{
		w:       w,
		log:     log.With().Str("component", "kafka").Logger(),
		timeout: 5 * time.Second,
	}
}

// Publish serializa el evento y lo escribe en el tópico.
func (p *Publisher) Publish(ctx context.Context, ev event.Event) error {
	msg, err := Encode(ev)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publicar %s: %w", ev.Type, err)
	}
	p.log.Debug().Str("event", ev.Type).Str("key", ev.Key).Msg("evento publicado")
	return nil
}

// Close cierra el writer y vacía lo pendiente.
func (p *Publisher) Close() error {
	return p.w.Close()
}

// Encode arma el mensaje Kafka: key = ev.Key, valor = Envelope JSON, header "event-type".
func Encode(ev event.Event) (kafka.Message, error) {
	occurred := ev.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	value, err := json.Marshal(Envelope{Type: ev.Type, Key: ev.Key, OccurredAt: occurred.UTC(), Payload: ev.Payload})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: serializar %s: %w", ev.Type, err)
	}
	return kafka.Message{
		Key:     []byte(ev.Key),
		Value:   value,
		Time:    occurred,
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(ev.Type)}},
	}, nil
}
