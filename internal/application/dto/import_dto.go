package dto

// ImportedOrderDTO referencia de una orden creada u omitida durante la importación.
type ImportedOrderDTO struct {
	Code       string `json:"code"`
	ExternalID string `json:"external_id"`
	Channel    string `json:"channel"`
}

// ImportSummary resultado de una importación. Success es true solo si ningún grupo falló;
// el éxito parcial se reporta, no se trata como fallo total.
type ImportSummary struct {
	Success   bool               `json:"success"`
	NewOrders []ImportedOrderDTO `json:"new_orders"`
	Existing  []ImportedOrderDTO `json:"existing"`
	Errors    []string           `json:"errors"`
}
