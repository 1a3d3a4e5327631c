// Package event define los eventos de dominio publicados hacia el exterior (Kafka).
package event

import "time"

const (
	TypeOrderCreated            = "OrderCreated"
	TypeOrderStatusChanged      = "OrderStatusChanged"
	TypeMaterialQuantityChanged = "MaterialQuantityChanged"
)

// Event evento de dominio. Key define la partición (ID de la orden o del material)
// para conservar el orden de los eventos de una misma entidad.
type Event struct {
	Type       string
	Key        string
	OccurredAt time.Time
	Payload    any
}

// OrderCreatedPayload payload de TypeOrderCreated.
type OrderCreatedPayload struct {
	OrderID    string `json:"order_id"`
	Code       string `json:"code"`
	Channel    string `json:"channel"`
	ExternalID string `json:"external_id,omitempty"`
	Lines      int    `json:"lines"`
}

// OrderStatusChangedPayload payload de TypeOrderStatusChanged.
type OrderStatusChangedPayload struct {
	OrderID        string `json:"order_id"`
	From           string `json:"from"`
	To             string `json:"to"`
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

// MaterialQuantityChangedPayload payload de TypeMaterialQuantityChanged.
type MaterialQuantityChangedPayload struct {
	MaterialID string `json:"material_id"`
	SKU        string `json:"sku"`
	OnHand     int    `json:"on_hand"`
	LowStock   bool   `json:"low_stock"`
}
