package fulfillment

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/event"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio de órdenes atado a esa tx.
// Garantiza que una orden y sus líneas se crean juntas o no se crean.
type TxRunner interface {
	Run(ctx context.Context, fn func(orders repository.OrderRepository) error) error
}

// EventPublisher publica eventos de dominio. Un fallo al publicar no revierte la operación.
type EventPublisher interface {
	Publish(ctx context.Context, ev event.Event) error
}

// ImportGuard evita que dos importaciones concurrentes procesen el mismo grupo (channel, external_id).
// release debe llamarse siempre que acquired sea true.
type ImportGuard interface {
	Acquire(ctx context.Context, channel, externalID string) (release func(), acquired bool, err error)
}

// NoopPublisher descarta los eventos (Kafka no configurado).
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, event.Event) error { return nil }

// NoopGuard siempre concede el grupo (Redis no configurado); la unicidad la garantiza la BD.
type NoopGuard struct{}

func (NoopGuard) Acquire(context.Context, string, string) (func(), bool, error) {
	return func() {}, true, nil
}
