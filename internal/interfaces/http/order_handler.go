package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/application/fulfillment"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/spreadsheet"
)

const orderNotFound = "orden no encontrada"

// ImportOptions límites del endpoint de importación.
type ImportOptions struct {
	MaxBytes       int64
	DefaultCharset string
}

// OrderHandler maneja órdenes manuales, su estado y la importación de archivos (protegido).
type OrderHandler struct {
	uc       *fulfillment.OrderUseCase
	importer *fulfillment.ImportUseCase
	opts     ImportOptions
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *fulfillment.OrderUseCase, importer *fulfillment.ImportUseCase, opts ImportOptions) *OrderHandler {
	return &OrderHandler{uc: uc, importer: importer, opts: opts}
}

// Create godoc
// @Summary      Crear orden manual
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Cliente y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateManual(c.Context(), in)
	if err != nil {
		return writeError(c, err, orderNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, orderNotFound)
	}
	return c.JSON(out)
}

// GetByCode godoc
// @Summary      Buscar orden por código corto
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código YY-XXXX"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/code/{code} [get]
func (h *OrderHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err, orderNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status   query  string  false  "PENDING, IN_PROGRESS, SHIPPED, DELIVERED, CANCELLED"
// @Param        channel  query  string  false  "Canal de venta (MANUAL, SHOPIFY, ...)"
// @Param        limit    query  int     false  "Límite"   default(20)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200      {object}  dto.OrderListResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), c.Query("status"), c.Query("channel"), page)
	if err != nil {
		return writeError(c, err, orderNotFound)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden
// @Description  Transiciones permitidas: PENDING→IN_PROGRESS|SHIPPED, IN_PROGRESS→SHIPPED.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado; carrier y tracking_number solo con SHIPPED"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, orderNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden
// @Tags         orders
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err, orderNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Importar órdenes desde CSV o XLSX
// @Description  Columnas requeridas: external_id, channel, customer_name, sku, qty. Una fila por línea;
//
//	las filas se agrupan por (channel, external_id). Las órdenes ya existentes se omiten.
//
// @Tags         orders
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true   "Archivo .csv o .xlsx"
// @Param        charset  query     string  false  "utf-8 (defecto), windows-1252, iso-8859-1"
// @Success      200      {object}  dto.ImportSummary
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      413      {object}  dto.ErrorResponse
// @Router       /api/orders/import [post]
func (h *OrderHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo 'file' requerido"})
	}
	if h.opts.MaxBytes > 0 && fh.Size > h.opts.MaxBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Code: "FILE_TOO_LARGE", Message: fmt.Sprintf("el archivo supera %d bytes", h.opts.MaxBytes),
		})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	defer f.Close()

	records, err := spreadsheet.Read(fh.Filename, f, c.Query("charset", h.opts.DefaultCharset))
	if err != nil {
		return writeError(c, err, "")
	}
	summary, err := h.importer.Import(c.Context(), records)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(summary)
}
