package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// StockHandler consultas de solo lectura del ledger. No hay escritura de
// stock por HTTP: la cantidad cambia únicamente vía movimientos y workflows.
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Get godoc
// @Summary      Cantidad disponible de un artículo en un almacén
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        article_id    query  string  true  "ID del artículo"
// @Param        warehouse_id  query  string  true  "ID del almacén"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/item [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	articleID := c.Query("article_id")
	warehouseID := c.Query("warehouse_id")
	if articleID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "article_id y warehouse_id son requeridos"})
	}
	out, err := h.uc.Get(articleID, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar stock filtrado por artículo y/o almacén
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        article_id    query  string  false  "Filtrar por artículo"
// @Param        warehouse_id  query  string  false  "Filtrar por almacén"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.Query("article_id"), c.Query("warehouse_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAlerts godoc
// @Summary      Filas de stock bajo el umbral de alerta
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por almacén"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stock/alerts [get]
func (h *StockHandler) ListAlerts(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.ListAlerts(c.Query("warehouse_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
