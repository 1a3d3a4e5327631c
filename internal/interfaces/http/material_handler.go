package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/Fulfillment-api/internal/application/usecase"
)

const materialNotFound = "material no encontrado"

// MaterialHandler maneja las peticiones HTTP para materiales y su stock (protegido).
type MaterialHandler struct {
	uc     *usecase.MaterialUseCase
	ledger *inventory.LedgerUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase, ledger *inventory.LedgerUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc, ledger: ledger}
}

// Create godoc
// @Summary      Crear material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Datos del material"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err, materialNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener material por ID
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, materialNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        archived  query  bool  false  "true = solo archivados, false = solo activos; vacío = todos"
// @Success      200  {object}  dto.MaterialListResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), queryBool(c, "archived"))
	if err != nil {
		return writeError(c, err, materialNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.UpdateMaterialRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, materialNotFound)
	}
	return c.JSON(out)
}

// SetQuantity godoc
// @Summary      Fijar cantidad en mano
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.SetQuantityRequest  true  "Nueva cantidad (>= 0)"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/quantity [put]
func (h *MaterialHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity es requerido"})
	}
	out, err := h.ledger.AdjustQuantity(c.Context(), c.Params("id"), *in.Quantity)
	if err != nil {
		return writeError(c, err, materialNotFound)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar cantidad por delta
// @Description  Suma delta de forma atómica (el resultado nunca baja de 0). unit_cost en entradas recalcula el costo promedio.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.AdjustQuantityRequest  true  "delta y unit_cost opcional"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/adjust [post]
func (h *MaterialHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.AdjustFromRequest(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, materialNotFound)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/archive [post]
func (h *MaterialHandler) Archive(c *fiber.Ctx) error {
	return h.setArchived(c, true)
}

// Unarchive godoc
// @Summary      Restaurar material archivado
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/unarchive [post]
func (h *MaterialHandler) Unarchive(c *fiber.Ctx) error {
	return h.setArchived(c, false)
}

func (h *MaterialHandler) setArchived(c *fiber.Ctx, archived bool) error {
	out, err := h.uc.SetArchived(c.Context(), c.Params("id"), archived)
	if err != nil {
		return writeError(c, err, materialNotFound)
	}
	return c.JSON(out)
}
