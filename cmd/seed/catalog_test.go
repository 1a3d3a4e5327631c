package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog_MaterialesYProductos(t *testing.T) {
	rows := [][]string{
		{"Kind", "SKU", "Name", "Variant", "On_Hand", "Reorder_Point", "Unit_Cost", "Price", "BOM"},
		{"material", "FAB-RED", "Tela", "Roja", "40", "10", "2,50", "", ""},
		{"material", "THR-1", "Hilo", "", "", "", "", "", ""},
		{"product", "TSHIRT-RED", "Camiseta", "Roja", "", "", "", "35000", "FAB-RED:2; THR-1:1"},
		{"", "", "", "", "", "", "", "", ""},
	}
	cat, err := parseCatalog(rows)
	require.NoError(t, err)
	require.Len(t, cat.materials, 2)
	require.Len(t, cat.products, 1)

	assert.Equal(t, 40, cat.materials[0].onHand)
	assert.Equal(t, "2.5", cat.materials[0].unitCost.String(), "acepta coma decimal")
	assert.Nil(t, cat.materials[1].unitCost)
	assert.Equal(t, []seedBOMLine{{"FAB-RED", 2}, {"THR-1", 1}}, cat.products[0].bom)
}

func TestParseCatalog_Errores(t *testing.T) {
	header := []string{"kind", "sku", "name", "on_hand", "bom"}
	cases := map[string][][]string{
		"sin columna kind":   {{"sku", "name"}},
		"kind desconocido":   {header, {"servicio", "S-1", "Envío", "", ""}},
		"sku repetido":       {header, {"material", "A", "Tela", "1", ""}, {"material", "A", "Tela", "1", ""}},
		"stock negativo":     {header, {"material", "A", "Tela", "-1", ""}},
		"bom mal formada":    {header, {"material", "A", "Tela", "1", ""}, {"product", "P", "Camiseta", "", "A=2"}},
		"material no existe": {header, {"product", "P", "Camiseta", "", "NOPE:1"}},
		"name vacío":         {header, {"material", "A", "", "1", ""}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCatalog(rows)
			assert.Error(t, err)
		})
	}
}

func TestWriteSQL(t *testing.T) {
	cat, err := parseCatalog([][]string{
		{"kind", "sku", "name", "bom"},
		{"material", "FAB-1", "Tela D'Or", ""},
		{"product", "P-1", "Camiseta", "FAB-1:3"},
		{"product", "P-2", "Sin BOM", ""},
	})
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, writeSQL(&b, cat))
	sql := b.String()

	assert.Contains(t, sql, "'Tela D''Or'", "comillas escapadas")
	assert.Contains(t, sql, "(SELECT id FROM materials WHERE sku = 'FAB-1'), 'qty', 3")
	assert.Contains(t, sql, "'[]'::jsonb")
	assert.Equal(t, 3, strings.Count(sql, "ON CONFLICT (sku) DO NOTHING"))
}
