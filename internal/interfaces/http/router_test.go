package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Fulfillment-api/internal/application/analytics"
	"github.com/jhoicas/Fulfillment-api/internal/application/fulfillment"
	"github.com/jhoicas/Fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/Fulfillment-api/internal/application/usecase"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Fulfillment-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Fulfillment-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// failingQuantity simula una caída del backend al escribir cantidades.
type failingQuantity struct {
	*memory.MaterialRepo
}

func (failingQuantity) SetQuantity(context.Context, string, int) (*entity.Material, error) {
	return nil, domain.Persistence("material.set_quantity", io.ErrUnexpectedEOF)
}

func buildRouterApp(t *testing.T, materials repository.MaterialRepository) *fiber.App {
	t.Helper()
	s := memory.NewStore()
	if materials == nil {
		materials = memory.NewMaterialRepository(s)
	}
	products := memory.NewProductRepository(s)
	orders := memory.NewOrderRepository(s)
	tx := memory.NewTxRunner(s)
	log := zerolog.Nop()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		MaterialUC:    usecase.NewMaterialUseCase(materials, products),
		ProductUC:     usecase.NewProductUseCase(products, materials, log),
		Ledger:        inventory.NewLedgerUseCase(materials, nil, log),
		Replenishment: inventory.NewReplenishmentUseCase(materials),
		OrderUC:       fulfillment.NewOrderUseCase(orders, products, tx, nil, log),
		ImportUC:      fulfillment.NewImportUseCase(orders, products, tx, nil, nil, log),
		DashboardUC:   appanalytics.NewDashboardUseCase(orders, materials, products),
		Import:        apphttp.ImportOptions{MaxBytes: 1 << 20},
		JWTSecret:     testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, role, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", tokenForRole(t, role))
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/orders/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleOperator))
	return req
}

func createMaterial(t *testing.T, app *fiber.App, sku string, onHand, reorder int) string {
	t.Helper()
	resp, body := call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/materials", map[string]any{
		"name": "Tela " + sku, "sku": sku, "on_hand": onHand, "reorder_point": reorder,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func createProduct(t *testing.T, app *fiber.App, sku, materialID string, qty int) string {
	t.Helper()
	resp, body := call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/products", map[string]any{
		"name": "Camiseta", "sku": sku,
		"bom": []map[string]any{{"material_id": materialID, "qty": qty}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

// ──────────────────────────────────────────────────────────────────────────────
// Materiales y stock
// ──────────────────────────────────────────────────────────────────────────────

func TestMaterials_CrearYListar(t *testing.T) {
	app := buildRouterApp(t, nil)
	createMaterial(t, app, "FAB-1", 10, 5)

	resp, body := call(t, app, pkgjwt.RoleViewer, http.MethodGet, "/api/materials?archived=false", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])
}

func TestMaterials_SKUDuplicado_Retorna409(t *testing.T) {
	app := buildRouterApp(t, nil)
	createMaterial(t, app, "FAB-1", 10, 5)

	resp, body := call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/materials", map[string]any{
		"name": "Otra", "sku": "FAB-1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", body["code"])
}

func TestMaterials_ViewerNoPuedeEscribir(t *testing.T) {
	app := buildRouterApp(t, nil)
	resp, body := call(t, app, pkgjwt.RoleViewer, http.MethodPost, "/api/materials", map[string]any{
		"name": "Tela", "sku": "FAB-1",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestMaterials_SetQuantity(t *testing.T) {
	app := buildRouterApp(t, nil)
	id := createMaterial(t, app, "FAB-1", 10, 5)

	resp, body := call(t, app, pkgjwt.RoleOperator, http.MethodPut, "/api/materials/"+id+"/quantity", map[string]any{"quantity": 3})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["on_hand"])
	assert.Equal(t, true, body["low_stock"])

	resp, body = call(t, app, pkgjwt.RoleOperator, http.MethodPut, "/api/materials/"+id+"/quantity", map[string]any{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	resp, _ = call(t, app, pkgjwt.RoleOperator, http.MethodPut, "/api/materials/"+id+"/quantity", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "quantity ausente")

	resp, body = call(t, app, pkgjwt.RoleOperator, http.MethodPut, "/api/materials/nope/quantity", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestMaterials_AdjustNoBajaDeCero(t *testing.T) {
	app := buildRouterApp(t, nil)
	id := createMaterial(t, app, "FAB-1", 4, 0)

	resp, body := call(t, app, pkgjwt.RoleOperator, http.MethodPost, "/api/materials/"+id+"/adjust", map[string]any{"delta": -10})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["on_hand"])
}

func TestMaterials_FallaDePersistencia_Retorna503(t *testing.T) {
	s := memory.NewStore()
	materials := failingQuantity{memory.NewMaterialRepository(s)}
	app := buildRouterApp(t, materials)
	id := createMaterial(t, app, "FAB-1", 4, 0)

	resp, body := call(t, app, pkgjwt.RoleOperator, http.MethodPut, "/api/materials/"+id+"/quantity", map[string]any{"quantity": 9})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "PERSISTENCE", body["code"])

	_, body = call(t, app, pkgjwt.RoleViewer, http.MethodGet, "/api/materials/"+id, nil)
	assert.EqualValues(t, 4, body["on_hand"], "el valor persistido no cambia")
}

func TestMaterials_ArchivarYRestaurar(t *testing.T) {
	app := buildRouterApp(t, nil)
	id := createMaterial(t, app, "FAB-1", 4, 0)

	_, body := call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/materials/"+id+"/archive", nil)
	assert.Equal(t, true, body["archived"])

	_, body = call(t, app, pkgjwt.RoleViewer, http.MethodGet, "/api/materials?archived=false", nil)
	assert.EqualValues(t, 0, body["total"])

	_, body = call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/materials/"+id+"/unarchive", nil)
	assert.Equal(t, false, body["archived"])
}

func TestInventory_ReplenishmentList(t *testing.T) {
	app := buildRouterApp(t, nil)
	createMaterial(t, app, "FAB-1", 2, 10)
	createMaterial(t, app, "FAB-2", 50, 10)

	resp, body := call(t, app, pkgjwt.RoleViewer, http.MethodGet, "/api/inventory/replenishment-list", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_VendibleSegunBOM(t *testing.T) {
	app := buildRouterApp(t, nil)
	matID := createMaterial(t, app, "FAB-1", 10, 0)
	id := createProduct(t, app, "TSHIRT-RED", matID, 3)

	resp, body := call(t, app, pkgjwt.RoleViewer, http.MethodGet, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["sellable"])
}

func TestProducts_SKUDeMaterial_Retorna409(t *testing.T) {
	app := buildRouterApp(t, nil)
	createMaterial(t, app, "FAB-1", 10, 0)

	resp, body := call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/products", map[string]any{"name": "X", "sku": "FAB-1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", body["code"])
}

func TestProducts_NoEncontrado(t *testing.T) {
	app := buildRouterApp(t, nil)
	resp, body := call(t, app, pkgjwt.RoleViewer, http.MethodGet, "/api/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "producto no encontrado", body["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_CicloDeEstado(t *testing.T) {
	app := buildRouterApp(t, nil)
	matID := createMaterial(t, app, "FAB-1", 10, 0)
	prodID := createProduct(t, app, "TSHIRT-RED", matID, 1)

	resp, order := call(t, app, pkgjwt.RoleOperator, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Ana",
		"lines":         []map[string]any{{"product_id": prodID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "PENDING", order["status"])
	id := order["id"].(string)
	code := order["code"].(string)

	resp, body := call(t, app, pkgjwt.RoleViewer, http.MethodGet, "/api/orders/code/"+strings.ToLower(code), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, body["id"])

	resp, body = call(t, app, pkgjwt.RoleOperator, http.MethodPatch, "/api/orders/"+id+"/status", map[string]any{
		"status": "SHIPPED", "carrier": "UPS", "tracking_number": "1Z999",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SHIPPED", body["status"])
	assert.Equal(t, "UPS", body["carrier"])

	resp, body = call(t, app, pkgjwt.RoleOperator, http.MethodPatch, "/api/orders/"+id+"/status", map[string]any{"status": "PENDING"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", body["code"])

	resp, _ = call(t, app, pkgjwt.RoleOperator, http.MethodDelete, "/api/orders/"+id, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo admin elimina")

	resp, _ = call(t, app, pkgjwt.RoleAdmin, http.MethodDelete, "/api/orders/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = call(t, app, pkgjwt.RoleViewer, http.MethodGet, "/api/orders/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrders_CodigoMalFormado_Retorna400(t *testing.T) {
	app := buildRouterApp(t, nil)
	resp, body := call(t, app, pkgjwt.RoleViewer, http.MethodGet, "/api/orders/code/XYZ", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestOrders_ListaEstadoDesconocido_Retorna400(t *testing.T) {
	app := buildRouterApp(t, nil)
	resp, _ := call(t, app, pkgjwt.RoleViewer, http.MethodGet, "/api/orders?status=LOST", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación
// ──────────────────────────────────────────────────────────────────────────────

const importCSV = "External_ID,Channel,Customer_Name,SKU,Qty\n" +
	"1001,shopify,Ana,TSHIRT-RED,2\n" +
	"1001,shopify,,TSHIRT-RED,1\n" +
	"1002,shopify,Luis,UNKNOWN,1\n"

func TestImport_CSVYReimportacion(t *testing.T) {
	app := buildRouterApp(t, nil)
	matID := createMaterial(t, app, "FAB-1", 10, 0)
	createProduct(t, app, "TSHIRT-RED", matID, 1)

	resp, body := send(t, app, uploadRequest(t, "orders.csv", importCSV))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"], "1002 no resuelve productos")
	assert.Len(t, body["new_orders"], 1)
	assert.Len(t, body["errors"], 1)

	_, body = send(t, app, uploadRequest(t, "orders.csv", importCSV))
	assert.Len(t, body["new_orders"], 0)
	assert.Len(t, body["existing"], 1)
}

func TestImport_SinColumnasRequeridas_Retorna400(t *testing.T) {
	app := buildRouterApp(t, nil)
	resp, body := send(t, app, uploadRequest(t, "orders.csv", "sku,qty\nA,1\n"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "faltan columnas requeridas")
}

func TestImport_FormatoNoSoportado_Retorna400(t *testing.T) {
	app := buildRouterApp(t, nil)
	resp, _ := send(t, app, uploadRequest(t, "orders.pdf", "x"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImport_ArchivoMuyGrande_Retorna413(t *testing.T) {
	app := buildRouterApp(t, nil)
	big := importCSV + strings.Repeat("9,x,y,z,1\n", (1<<20)/10+1)
	resp, body := send(t, app, uploadRequest(t, "orders.csv", big))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "FILE_TOO_LARGE", body["code"])
}

func TestImport_SinArchivo_Retorna400(t *testing.T) {
	app := buildRouterApp(t, nil)
	resp, body := call(t, app, pkgjwt.RoleOperator, http.MethodPost, "/api/orders/import", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FILE", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_Summary(t *testing.T) {
	app := buildRouterApp(t, nil)
	createMaterial(t, app, "FAB-1", 1, 5)

	resp, body := call(t, app, pkgjwt.RoleViewer, http.MethodGet, "/api/dashboard/summary", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["low_stock_materials"])
	assert.Contains(t, body["orders_by_status"], "PENDING")
}
