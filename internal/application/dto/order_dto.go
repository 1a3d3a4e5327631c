package dto

import "time"

// OrderLineRequest línea de una orden manual.
type OrderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Channel      string             `json:"channel"`
	ExternalID   *string            `json:"external_id"`
	CustomerName string             `json:"customer_name" validate:"required"`
	Lines        []OrderLineRequest `json:"lines" validate:"required,min=1"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status         string  `json:"status"`
	Carrier        *string `json:"carrier,omitempty"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
}

// OrderLineResponse salida de una línea.
type OrderLineResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID             string              `json:"id"`
	Code           *string             `json:"code"`
	Channel        string              `json:"channel"`
	ExternalID     *string             `json:"external_id"`
	CustomerName   *string             `json:"customer_name"`
	Status         string              `json:"status"`
	Carrier        *string             `json:"carrier"`
	TrackingNumber *string             `json:"tracking_number"`
	CreatedAt      time.Time           `json:"created_at"`
	Lines          []OrderLineResponse `json:"lines,omitempty"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
