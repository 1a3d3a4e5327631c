package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Columnas del catálogo. kind es "material" o "product"; bom solo aplica a productos
// con el formato "SKU:qty;SKU:qty".
var catalogColumns = []string{"kind", "sku", "name", "variant", "on_hand", "reorder_point", "unit_cost", "price", "bom"}

type seedMaterial struct {
	id, sku, name, variant string
	onHand, reorderPoint   int
	unitCost               *decimal.Decimal
}

type seedBOMLine struct {
	materialSKU string
	qty         int
}

type seedProduct struct {
	id, sku, name, variant string
	price                  *decimal.Decimal
	bom                    []seedBOMLine
}

type catalog struct {
	materials []seedMaterial
	products  []seedProduct
}

// parseCatalog interpreta las filas (fila 0 = encabezado). Las filas sin sku se omiten;
// un SKU repetido o una BOM que referencia un material desconocido invalidan el catálogo.
func parseCatalog(rows [][]string) (*catalog, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("catálogo vacío")
	}
	idx := map[string]int{}
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, col := range []string{"kind", "sku", "name"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q (columnas: %s)", col, strings.Join(catalogColumns, ", "))
		}
	}
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	cat := &catalog{}
	seen := map[string]bool{}
	materialSKUs := map[string]bool{}
	for n, row := range rows[1:] {
		line := n + 2
		sku := cell(row, "sku")
		if sku == "" {
			continue
		}
		if seen[sku] {
			return nil, fmt.Errorf("fila %d: SKU %q repetido", line, sku)
		}
		seen[sku] = true
		name := cell(row, "name")
		if name == "" {
			return nil, fmt.Errorf("fila %d: name es requerido", line)
		}

		switch strings.ToLower(cell(row, "kind")) {
		case "material":
			m := seedMaterial{id: uuid.New().String(), sku: sku, name: name, variant: cell(row, "variant")}
			var err error
			if m.onHand, err = nonNegative(cell(row, "on_hand")); err != nil {
				return nil, fmt.Errorf("fila %d: on_hand: %w", line, err)
			}
			if m.reorderPoint, err = nonNegative(cell(row, "reorder_point")); err != nil {
				return nil, fmt.Errorf("fila %d: reorder_point: %w", line, err)
			}
			if m.unitCost, err = optionalDecimal(cell(row, "unit_cost")); err != nil {
				return nil, fmt.Errorf("fila %d: unit_cost: %w", line, err)
			}
			cat.materials = append(cat.materials, m)
			materialSKUs[sku] = true
		case "product":
			p := seedProduct{id: uuid.New().String(), sku: sku, name: name, variant: cell(row, "variant")}
			var err error
			if p.price, err = optionalDecimal(cell(row, "price")); err != nil {
				return nil, fmt.Errorf("fila %d: price: %w", line, err)
			}
			if p.bom, err = parseBOM(cell(row, "bom")); err != nil {
				return nil, fmt.Errorf("fila %d: bom: %w", line, err)
			}
			cat.products = append(cat.products, p)
		default:
			return nil, fmt.Errorf("fila %d: kind %q desconocido (material|product)", line, cell(row, "kind"))
		}
	}
	for _, p := range cat.products {
		for _, l := range p.bom {
			if !materialSKUs[l.materialSKU] {
				return nil, fmt.Errorf("producto %s: material %q no está en el catálogo", p.sku, l.materialSKU)
			}
		}
	}
	return cat, nil
}

func parseBOM(s string) ([]seedBOMLine, error) {
	var out []seedBOMLine
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sku, qtyStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%q: se esperaba SKU:qty", part)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("%q: qty debe ser un entero mayor a 0", part)
		}
		out = append(out, seedBOMLine{materialSKU: strings.TrimSpace(sku), qty: qty})
	}
	return out, nil
}

func nonNegative(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("no puede ser negativo")
	}
	return n, nil
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("no puede ser negativo")
	}
	return &d, nil
}

// writeSQL escribe los INSERT idempotentes. Las BOM resuelven material_id por SKU en la BD,
// de modo que el script sirve aunque los materiales ya existan con otro id.
func writeSQL(w io.Writer, cat *catalog) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de materiales y productos\n")
	b.WriteString("-- Generado por cmd/seed\n\n")

	if len(cat.materials) > 0 {
		b.WriteString("-- 1. Materiales\n")
		b.WriteString("INSERT INTO materials (id, name, variant, sku, on_hand, reorder_point, unit_cost) VALUES\n")
		for i, m := range cat.materials {
			fmt.Fprintf(&b, "  (%s, %s, %s, %s, %d, %d, %s)",
				quote(m.id), quote(m.name), nullable(m.variant), quote(m.sku), m.onHand, m.reorderPoint, decimalSQL(m.unitCost))
			if i < len(cat.materials)-1 {
				b.WriteString(",\n")
			} else {
				b.WriteString("\n")
			}
		}
		b.WriteString("ON CONFLICT (sku) DO NOTHING;\n\n")
	}

	if len(cat.products) > 0 {
		b.WriteString("-- 2. Productos (BOM por SKU de material)\n")
		for _, p := range cat.products {
			fmt.Fprintf(&b, "INSERT INTO products (id, name, variant, sku, price, bom)\n")
			fmt.Fprintf(&b, "VALUES (%s, %s, %s, %s, %s, %s)\n",
				quote(p.id), quote(p.name), nullable(p.variant), quote(p.sku), decimalSQL(p.price), bomSQL(p.bom))
			b.WriteString("ON CONFLICT (sku) DO NOTHING;\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func bomSQL(lines []seedBOMLine) string {
	if len(lines) == 0 {
		return "'[]'::jsonb"
	}
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf(
			"jsonb_build_object('material_id', (SELECT id FROM materials WHERE sku = %s), 'qty', %d)",
			quote(l.materialSKU), l.qty))
	}
	return "jsonb_build_array(" + strings.Join(parts, ", ") + ")"
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return quote(s)
}

func decimalSQL(d *decimal.Decimal) string {
	if d == nil {
		return "NULL"
	}
	return d.String()
}
