package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Fulfillment-api/internal/application/inventory"
)

// InventoryHandler maneja las consultas de reposición de materiales (protegido).
type InventoryHandler struct {
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{replenishment: replenishment}
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Devuelve los materiales activos bajo su punto de reorden con la cantidad sugerida
//
//	de pedido, ordenados por déficit.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}

	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
