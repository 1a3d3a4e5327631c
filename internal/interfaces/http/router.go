package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/Fulfillment-api/internal/application/analytics"
	"github.com/jhoicas/Fulfillment-api/internal/application/fulfillment"
	"github.com/jhoicas/Fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/Fulfillment-api/internal/application/usecase"
	"github.com/jhoicas/Fulfillment-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC    *usecase.MaterialUseCase
	ProductUC     *usecase.ProductUseCase
	Ledger        *inventory.LedgerUseCase
	Replenishment *inventory.ReplenishmentUseCase
	OrderUC       *fulfillment.OrderUseCase
	ImportUC      *fulfillment.ImportUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	Import        ImportOptions
	JWTSecret     string
}

// Router registra las rutas de la API. Lectura para cualquier rol; escritura para admin y operator.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleOperator, jwt.RoleViewer)
	write := RequireRole(jwt.RoleAdmin, jwt.RoleOperator)

	// Materials
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.Ledger)
	materials.Get("/", anyRole, materialHandler.List)
	materials.Post("/", write, materialHandler.Create)
	materials.Get("/:id", anyRole, materialHandler.GetByID)
	materials.Put("/:id", write, materialHandler.Update)
	materials.Put("/:id/quantity", write, materialHandler.SetQuantity)
	materials.Post("/:id/adjust", write, materialHandler.Adjust)
	materials.Post("/:id/archive", write, materialHandler.Archive)
	materials.Post("/:id/unarchive", write, materialHandler.Unarchive)

	// Inventory
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Replenishment)
	invGroup.Get("/replenishment-list", anyRole, inventoryHandler.GetReplenishmentList)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", anyRole, productHandler.List)
	products.Post("/", write, productHandler.Create)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", write, productHandler.Update)
	products.Post("/:id/archive", write, productHandler.Archive)
	products.Post("/:id/unarchive", write, productHandler.Unarchive)

	// Orders (code/:code e import antes de /:id)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ImportUC, deps.Import)
	orders.Get("/", anyRole, orderHandler.List)
	orders.Post("/", write, orderHandler.Create)
	orders.Post("/import", write, orderHandler.Import)
	orders.Get("/code/:code", anyRole, orderHandler.GetByCode)
	orders.Get("/:id", anyRole, orderHandler.GetByID)
	orders.Patch("/:id/status", write, orderHandler.UpdateStatus)
	orders.Delete("/:id", RequireRole(jwt.RoleAdmin), orderHandler.Delete)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", anyRole, dashboardHandler.GetSummary)
}
