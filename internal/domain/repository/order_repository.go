package repository

import (
	"context"
	"fmt"

	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// ErrCodeTaken colisión del código corto al crear una orden. Envuelve domain.ErrDuplicate.
var ErrCodeTaken = fmt.Errorf("%w: código de orden en uso", domain.ErrDuplicate)

// OrderFilter filtro de listado de órdenes.
type OrderFilter struct {
	Status  *entity.OrderStatus
	Channel string
	Limit   int
	Offset  int
}

// OrderRepository define el puerto de persistencia para Order y OrderLine (DIP).
// Los Get devuelven (nil, nil) cuando no hay fila.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByCode(ctx context.Context, code string) (*entity.Order, error)
	GetByChannelAndExternalID(ctx context.Context, channel, externalID string) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// Create devuelve domain.ErrDuplicate si (channel, external_id) ya existe y ErrCodeTaken si el código ya existe.
	Create(ctx context.Context, o *entity.Order) error
	// UpdateStatus escribe {status, carrier?, tracking?} en una sola sentencia y devuelve la fila escrita.
	UpdateStatus(ctx context.Context, id string, patch entity.StatusPatch) (*entity.Order, error)
	CreateLines(ctx context.Context, lines []*entity.OrderLine) error
	ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[entity.OrderStatus]int, error)
}
