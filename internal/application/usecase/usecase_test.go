package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/usecase"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/memory"
)

type catalog struct {
	materials *usecase.MaterialUseCase
	products  *usecase.ProductUseCase
}

func newCatalog() catalog {
	s := memory.NewStore()
	mats := memory.NewMaterialRepository(s)
	prods := memory.NewProductRepository(s)
	return catalog{
		materials: usecase.NewMaterialUseCase(mats, prods),
		products:  usecase.NewProductUseCase(prods, mats, zerolog.Nop()),
	}
}

func (c catalog) material(t *testing.T, sku string, onHand int) *dto.MaterialResponse {
	t.Helper()
	m, err := c.materials.Create(context.Background(), dto.CreateMaterialRequest{Name: "Material " + sku, SKU: sku, OnHand: onHand, ReorderPoint: 5})
	require.NoError(t, err)
	return m
}

func TestMaterialCreate_SKUDuplicado(t *testing.T) {
	c := newCatalog()
	c.material(t, "FAB-1", 10)

	_, err := c.materials.Create(context.Background(), dto.CreateMaterialRequest{Name: "Otra", SKU: "FAB-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = c.materials.Create(context.Background(), dto.CreateMaterialRequest{Name: " ", SKU: "X"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = c.materials.Create(context.Background(), dto.CreateMaterialRequest{Name: "Neg", SKU: "NEG", OnHand: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMaterialUpdate_NoTocaCantidad(t *testing.T) {
	c := newCatalog()
	m := c.material(t, "FAB-1", 10)
	name := "Tela azul"
	rp := 20
	cost := decimal.RequireFromString("3.25")

	out, err := c.materials.Update(context.Background(), m.ID, dto.UpdateMaterialRequest{Name: &name, ReorderPoint: &rp, UnitCost: &cost})
	require.NoError(t, err)
	assert.Equal(t, "Tela azul", out.Name)
	assert.Equal(t, 10, out.OnHand)
	assert.True(t, out.LowStock, "10 < 20")

	_, err = c.materials.Update(context.Background(), "nope", dto.UpdateMaterialRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaterialArchive(t *testing.T) {
	c := newCatalog()
	m := c.material(t, "FAB-1", 10)
	c.material(t, "FAB-2", 10)

	out, err := c.materials.SetArchived(context.Background(), m.ID, true)
	require.NoError(t, err)
	assert.True(t, out.Archived)

	active := false
	list, err := c.materials.List(context.Background(), &active)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	all, err := c.materials.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
}

func TestProductCreate_SKUDeMaterialSeRechaza(t *testing.T) {
	c := newCatalog()
	c.material(t, "SHARED", 10)
	_, err := c.products.Create(context.Background(), dto.CreateProductRequest{Name: "Camiseta", SKU: "SHARED"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = c.products.Create(context.Background(), dto.CreateProductRequest{Name: "Camiseta", SKU: "TSHIRT"})
	require.NoError(t, err)
	_, err = c.materials.Create(context.Background(), dto.CreateMaterialRequest{Name: "Tela", SKU: "TSHIRT"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "la regla aplica en ambos sentidos")
}

func TestProductCreate_ValidaBOM(t *testing.T) {
	c := newCatalog()
	m := c.material(t, "FAB-1", 10)
	ctx := context.Background()

	_, err := c.products.Create(ctx, dto.CreateProductRequest{Name: "A", SKU: "A", BOM: []dto.BOMLineDTO{{MaterialID: m.ID, Qty: 0}}})
	assert.ErrorIs(t, err, domain.ErrValidation, "qty 0")

	_, err = c.products.Create(ctx, dto.CreateProductRequest{Name: "A", SKU: "A", BOM: []dto.BOMLineDTO{{MaterialID: "fantasma", Qty: 1}}})
	assert.ErrorIs(t, err, domain.ErrValidation, "material inexistente")

	_, err = c.products.Create(ctx, dto.CreateProductRequest{Name: "A", SKU: "A", BOM: []dto.BOMLineDTO{{MaterialID: m.ID, Qty: 1}, {MaterialID: m.ID, Qty: 2}}})
	assert.ErrorIs(t, err, domain.ErrValidation, "material repetido")
}

func TestProduct_VendiblesSegunStock(t *testing.T) {
	c := newCatalog()
	fab := c.material(t, "FAB-1", 10)
	thr := c.material(t, "THR-1", 12)
	ctx := context.Background()

	p, err := c.products.Create(ctx, dto.CreateProductRequest{
		Name: "Camiseta", SKU: "TSHIRT",
		BOM: []dto.BOMLineDTO{{MaterialID: fab.ID, Qty: 2}, {MaterialID: thr.ID, Qty: 5}},
	})
	require.NoError(t, err)
	require.NotNil(t, p.Sellable)
	assert.Equal(t, 2, *p.Sellable, "min(10/2, 12/5)")

	noBOM, err := c.products.Create(ctx, dto.CreateProductRequest{Name: "Servicio", SKU: "SVC"})
	require.NoError(t, err)
	assert.Nil(t, noBOM.Sellable, "sin BOM queda indefinido")
	assert.NotNil(t, noBOM.BOM)

	list, err := c.products.List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}

func TestProductUpdate_BOMNilConservaBOMVaciaElimina(t *testing.T) {
	c := newCatalog()
	fab := c.material(t, "FAB-1", 10)
	ctx := context.Background()
	p, err := c.products.Create(ctx, dto.CreateProductRequest{
		Name: "Camiseta", SKU: "TSHIRT", BOM: []dto.BOMLineDTO{{MaterialID: fab.ID, Qty: 1}},
	})
	require.NoError(t, err)

	name := "Camiseta roja"
	out, err := c.products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Len(t, out.BOM, 1)

	empty := []dto.BOMLineDTO{}
	out, err = c.products.Update(ctx, p.ID, dto.UpdateProductRequest{BOM: &empty})
	require.NoError(t, err)
	assert.Empty(t, out.BOM)
	assert.Nil(t, out.Sellable)
}

func TestProductArchive(t *testing.T) {
	c := newCatalog()
	p, err := c.products.Create(context.Background(), dto.CreateProductRequest{Name: "Camiseta", SKU: "TSHIRT"})
	require.NoError(t, err)

	out, err := c.products.SetArchived(context.Background(), p.ID, true)
	require.NoError(t, err)
	assert.True(t, out.Archived)

	_, err = c.products.SetArchived(context.Background(), "nope", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.products.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
