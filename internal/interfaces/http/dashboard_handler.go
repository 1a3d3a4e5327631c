package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/Fulfillment-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los contadores operativos: órdenes por estado, materiales bajo
// punto de reorden y productos sin unidades vendibles.
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(summary)
}
