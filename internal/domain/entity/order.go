package entity

import "time"

// OrderStatus estado del ciclo de vida de una orden.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED" // terminal, asignado externamente
	OrderStatusCancelled  OrderStatus = "CANCELLED" // terminal, asignado externamente
)

// OrderStatuses todos los estados conocidos, en orden de ciclo de vida.
var OrderStatuses = []OrderStatus{
	OrderStatusPending, OrderStatusInProgress, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
}

// ChannelManual canal por defecto para órdenes capturadas a mano.
const ChannelManual = "MANUAL"

// Order pedido de un cliente. (Channel, ExternalID) es único cuando ExternalID está presente.
type Order struct {
	ID             string
	Code           *string
	Channel        string
	ExternalID     *string
	CustomerName   *string
	Status         OrderStatus
	Carrier        *string
	TrackingNumber *string
	CreatedAt      time.Time
}

// OrderLine línea de una orden. Inmutable; se elimina solo en cascada con la orden.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
}

// StatusPatch escritura atómica de un cambio de estado (carrier/tracking opcionales).
// From es el estado leído al validar la transición; la escritura solo aplica si la orden sigue en él.
type StatusPatch struct {
	From           OrderStatus
	Status         OrderStatus
	Carrier        *string
	TrackingNumber *string
}
