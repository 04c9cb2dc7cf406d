package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP de inventarios físicos.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir un inventario físico
// @Tags         inventory-counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCountRequest  true  "Inventario"
// @Success      201   {object}  dto.CountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory-counts [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in.WarehouseID, GetUserID(c), in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCountResponse(out, nil))
}

// AddLine godoc
// @Summary      Registrar la cantidad contada de un artículo
// @Description  Solo se acepta la cantidad contada; la registrada y la
// @Description  varianza las calcula el motor. Sin efecto en el ledger hasta
// @Description  la validación.
// @Tags         inventory-counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del inventario"
// @Param        body  body  dto.AddCountLineRequest  true  "Línea"
// @Success      200   {object}  dto.CountLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory-counts/{id}/lines [post]
func (h *InventoryHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddCountLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddLine(c.Params("id"), in.ArticleID, in.CountedQuantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCountLineResponse(out))
}

// Validate godoc
// @Summary      Validar el inventario (aplica todas las líneas al ledger)
// @Tags         inventory-counts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {object}  dto.CountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory-counts/{id}/validate [post]
func (h *InventoryHandler) Validate(c *fiber.Ctx) error {
	out, err := h.uc.Validate(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCountResponse(out, nil))
}

// Reject godoc
// @Summary      Rechazar el inventario (sin efecto en el ledger)
// @Tags         inventory-counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del inventario"
// @Param        body  body  dto.RejectCountRequest  false  "Razón"
// @Success      200   {object}  dto.CountResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory-counts/{id}/reject [post]
func (h *InventoryHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectCountRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.Reject(c.Context(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCountResponse(out, nil))
}

// GetByID godoc
// @Summary      Obtener inventario con sus líneas
// @Tags         inventory-counts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del inventario"
// @Success      200  {object}  dto.CountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory-counts/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	count, lines, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCountResponse(count, lines))
}

// List godoc
// @Summary      Listar inventarios
// @Tags         inventory-counts
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por almacén"
// @Param        status        query  string  false  "in_progress | validated | rejected"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.CountListResponse
// @Router       /api/inventory-counts [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	list, err := h.uc.List(c.Query("warehouse_id"), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.CountResponse, 0, len(list))
	for _, count := range list {
		items = append(items, *toCountResponse(count, nil))
	}
	return c.JSON(dto.CountListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

func toCountResponse(count *entity.InventoryCount, lines []*entity.CountLine) *dto.CountResponse {
	if count == nil {
		return nil
	}
	resp := &dto.CountResponse{
		ID:            count.ID,
		WarehouseID:   count.WarehouseID,
		ResponsibleID: count.ResponsibleID,
		Status:        count.Status,
		ValidatorID:   count.ValidatorID,
		Reason:        count.Reason,
		Notes:         count.Notes,
		CreatedAt:     count.CreatedAt,
		ValidatedAt:   count.ValidatedAt,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, *toCountLineResponse(l))
	}
	return resp
}

func toCountLineResponse(l *entity.CountLine) *dto.CountLineResponse {
	if l == nil {
		return nil
	}
	return &dto.CountLineResponse{
		ID:               l.ID,
		ArticleID:        l.ArticleID,
		CountedQuantity:  l.CountedQuantity,
		RecordedQuantity: l.RecordedQuantity,
		Variance:         l.Variance,
	}
}
