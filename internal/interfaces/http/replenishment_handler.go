package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/replenishment"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ReplenishmentHandler maneja las peticiones HTTP de demandas de
// reaprovisionamiento.
type ReplenishmentHandler struct {
	uc *replenishment.UseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(uc *replenishment.UseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// Create godoc
// @Summary      Levantar una demanda de reaprovisionamiento
// @Tags         replenishments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReplenishmentRequest  true  "Demanda"
// @Success      201   {object}  dto.ReplenishmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/replenishment-requests [post]
func (h *ReplenishmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReplenishmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(replenishment.CreateInput{
		WarehouseID:       in.WarehouseID,
		ArticleID:         in.ArticleID,
		QuantityRequested: in.QuantityRequested,
		Priority:          in.Priority,
		RequesterID:       GetUserID(c),
		Notes:             in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReplenishmentResponse(out))
}

// Approve godoc
// @Summary      Aprobar una demanda (sin efecto en el ledger)
// @Description  La cantidad aprobada es opcional; por defecto se aprueba la
// @Description  solicitada. Una segunda decisión responde 409.
// @Tags         replenishments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la demanda"
// @Param        body  body  dto.DecideReplenishmentRequest  false  "Decisión"
// @Success      200   {object}  dto.ReplenishmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/replenishment-requests/{id}/approve [post]
func (h *ReplenishmentHandler) Approve(c *fiber.Ctx) error {
	var in dto.DecideReplenishmentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.Approve(c.Params("id"), GetUserID(c), in.QuantityApproved, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReplenishmentResponse(out))
}

// Reject godoc
// @Summary      Rechazar una demanda
// @Tags         replenishments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la demanda"
// @Param        body  body  dto.DecideReplenishmentRequest  false  "Decisión"
// @Success      200   {object}  dto.ReplenishmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/replenishment-requests/{id}/reject [post]
func (h *ReplenishmentHandler) Reject(c *fiber.Ctx) error {
	var in dto.DecideReplenishmentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.Reject(c.Params("id"), GetUserID(c), in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReplenishmentResponse(out))
}

// GetByID godoc
// @Summary      Obtener demanda por ID
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la demanda"
// @Success      200  {object}  dto.ReplenishmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/replenishment-requests/{id} [get]
func (h *ReplenishmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(toReplenishmentResponse(out))
}

// List godoc
// @Summary      Listar demandas de reaprovisionamiento
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por almacén"
// @Param        status        query  string  false  "pending | approved | rejected"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ReplenishmentListResponse
// @Router       /api/replenishment-requests [get]
func (h *ReplenishmentHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	list, err := h.uc.List(c.Query("warehouse_id"), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.ReplenishmentResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReplenishmentResponse(r))
	}
	return c.JSON(dto.ReplenishmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

func toReplenishmentResponse(r *entity.ReplenishmentRequest) *dto.ReplenishmentResponse {
	if r == nil {
		return nil
	}
	return &dto.ReplenishmentResponse{
		ID:                r.ID,
		WarehouseID:       r.WarehouseID,
		ArticleID:         r.ArticleID,
		QuantityRequested: r.QuantityRequested,
		QuantityApproved:  r.QuantityApproved,
		Priority:          r.Priority,
		Status:            r.Status,
		RequesterID:       r.RequesterID,
		ApproverID:        r.ApproverID,
		DecisionNote:      r.DecisionNote,
		CreatedAt:         r.CreatedAt,
		DecidedAt:         r.DecidedAt,
	}
}
