package order

import (
	"strings"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// validNext transiciones permitidas por el núcleo. SHIPPED, DELIVERED y CANCELLED no tienen salida aquí;
// DELIVERED y CANCELLED existen en el modelo pero se asignan fuera de este núcleo.
var validNext = map[entity.OrderStatus]map[entity.OrderStatus]bool{
	entity.OrderStatusPending:    {entity.OrderStatusInProgress: true, entity.OrderStatusShipped: true},
	entity.OrderStatusInProgress: {entity.OrderStatusShipped: true},
	entity.OrderStatusShipped:    {},
	entity.OrderStatusDelivered:  {},
	entity.OrderStatusCancelled:  {},
}

// CanTransition indica si from -> to es una transición válida.
func CanTransition(from, to entity.OrderStatus) bool {
	return validNext[from][to]
}

// ParseStatus normaliza y valida un estado recibido como texto.
func ParseStatus(s string) (entity.OrderStatus, bool) {
	st := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := validNext[st]
	return st, ok
}

// CapturesShipping indica si la transición hacia to registra transportadora y guía.
func CapturesShipping(to entity.OrderStatus) bool {
	return to == entity.OrderStatusShipped
}

// IsTerminal estados sin transiciones de salida en este núcleo.
func IsTerminal(s entity.OrderStatus) bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}
