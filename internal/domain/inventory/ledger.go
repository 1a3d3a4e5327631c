package inventory

import "github.com/jhoicas/Fulfillment-api/internal/domain/entity"

// ClampQuantity aplica la regla "las cantidades nunca bajan de 0".
// Se usa en el borde que calcula un valor absoluto a partir de una lectura previa.
func ClampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}

// IsLowStock indica si el material está por debajo de su punto de reorden.
// Solo informa (advertencias en UI); no bloquea ninguna operación.
func IsLowStock(m *entity.Material) bool {
	if m == nil {
		return false
	}
	return m.OnHand < m.ReorderPoint
}

// SuggestedOrderQty cantidad sugerida para reponer hasta 1.5x el punto de reorden (redondeo hacia arriba).
func SuggestedOrderQty(m *entity.Material) int {
	if m == nil {
		return 0
	}
	ideal := (m.ReorderPoint*3 + 1) / 2
	return ClampQuantity(ideal - m.OnHand)
}
