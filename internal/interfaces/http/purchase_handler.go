package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/purchase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// PurchaseHandler maneja las peticiones HTTP de demandas de compra.
type PurchaseHandler struct {
	uc *purchase.UseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchase.UseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Levantar una demanda de compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Demanda de compra"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(purchase.CreateInput{
		ArticleID:       in.ArticleID,
		Quantity:        in.Quantity,
		EstimatedAmount: in.EstimatedAmount,
		WarehouseID:     in.WarehouseID,
		RequesterID:     GetUserID(c),
		Notes:           in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(out))
}

// ApproveFinance godoc
// @Summary      Aprobar la etapa financiera
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la demanda"
// @Param        body  body  dto.DecidePurchaseRequest  false  "Decisión"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/approve [post]
func (h *PurchaseHandler) ApproveFinance(c *fiber.Ctx) error {
	var in dto.DecidePurchaseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.ApproveFinance(c.Params("id"), GetUserID(c), in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPurchaseResponse(out))
}

// RejectFinance godoc
// @Summary      Rechazar la etapa financiera
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la demanda"
// @Param        body  body  dto.DecidePurchaseRequest  false  "Decisión"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/reject [post]
func (h *PurchaseHandler) RejectFinance(c *fiber.Ctx) error {
	var in dto.DecidePurchaseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.RejectFinance(c.Params("id"), GetUserID(c), in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPurchaseResponse(out))
}

// Receive godoc
// @Summary      Registrar la recepción física
// @Description  Exige aprobación financiera previa y responde 409 en el
// @Description  segundo intento; el ledger se incrementa exactamente una vez.
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la demanda"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	out, err := h.uc.Receive(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPurchaseResponse(out))
}

// GetByID godoc
// @Summary      Obtener demanda de compra por ID
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la demanda"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(toPurchaseResponse(out))
}

// List godoc
// @Summary      Listar demandas de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.PurchaseListResponse
// @Router       /api/purchase-requests [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	list, err := h.uc.List(c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return c.JSON(dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

func toPurchaseResponse(p *entity.PurchaseRequest) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	return &dto.PurchaseResponse{
		ID:                p.ID,
		ArticleID:         p.ArticleID,
		Quantity:          p.Quantity,
		EstimatedAmount:   p.EstimatedAmount,
		Status:            p.Status,
		ReceptionStatus:   p.ReceptionStatus,
		RequesterID:       p.RequesterID,
		FinanceApproverID: p.FinanceApproverID,
		WarehouseID:       p.WarehouseID,
		DecisionNote:      p.DecisionNote,
		CreatedAt:         p.CreatedAt,
		DecidedAt:         p.DecidedAt,
		ReceivedAt:        p.ReceivedAt,
	}
}
