package inventory

import "github.com/jhoicas/Fulfillment-api/internal/domain/entity"

// CalculateSellable devuelve cuántas unidades completas del producto se pueden armar con el stock actual.
// El segundo valor es false cuando la BOM está vacía: el vendible queda indefinido (no es 0).
// Un material ausente del índice cuenta como quiebre de stock (aporta 0), no como error.
func CalculateSellable(bom []entity.BOMLine, onHand map[string]int) (int, bool) {
	if len(bom) == 0 {
		return 0, false
	}
	sellable := -1
	for _, line := range bom {
		units := 0
		if qty, ok := onHand[line.MaterialID]; ok && line.Qty > 0 && qty > 0 {
			units = qty / line.Qty
		}
		if sellable < 0 || units < sellable {
			sellable = units
		}
	}
	return sellable, true
}

// OnHandIndex construye el mapa materialID -> stock usado por CalculateSellable.
func OnHandIndex(materials []*entity.Material) map[string]int {
	idx := make(map[string]int, len(materials))
	for _, m := range materials {
		if m == nil {
			continue
		}
		idx[m.ID] = m.OnHand
	}
	return idx
}
