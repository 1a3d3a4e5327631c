package inventory

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/event"
)

// EventPublisher publica eventos de dominio del ledger. Un fallo al publicar no revierte el ajuste.
type EventPublisher interface {
	Publish(ctx context.Context, ev event.Event) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, event.Event) error { return nil }
