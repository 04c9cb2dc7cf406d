package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/movement"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP de movimientos de stock.
type MovementHandler struct {
	uc *movement.ProcessUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.ProcessUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Procesar un movimiento de stock
// @Description  Aplica el movimiento al ledger de forma transaccional. El
// @Description  cliente puede enviar un id propio (UUID) para que el reintento
// @Description  de un movimiento ya aplicado sea un éxito sin efecto.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, applied, err := h.uc.Process(c.Context(), movement.Input{
		ID:            in.ID,
		ArticleID:     in.ArticleID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		SourceID:      in.SourceID,
		DestinationID: in.DestinationID,
		ActorID:       GetUserID(c),
		RecipientID:   in.RecipientID,
		RecipientType: in.RecipientType,
		Notes:         in.Notes,
		Credential:    GetCredential(c),
	})
	if err != nil {
		if out != nil {
			movementsRejected.WithLabelValues(in.Type).Inc()
		}
		return respondError(c, err)
	}
	// El reintento idempotente devuelve la fila almacenada y no cuenta como
	// un movimiento aplicado más.
	if applied {
		movementsApplied.WithLabelValues(in.Type).Inc()
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(out))
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(toMovementResponse(out))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        article_id    query  string  false  "Filtrar por artículo"
// @Param        warehouse_id  query  string  false  "Filtrar por almacén (origen o destino)"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	list, err := h.uc.List(c.Query("article_id"), c.Query("warehouse_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:              m.ID,
		ArticleID:       m.ArticleID,
		Type:            m.Type,
		Quantity:        m.Quantity,
		SourceID:        m.SourceID,
		DestinationID:   m.DestinationID,
		ActorID:         m.ActorID,
		RecipientID:     m.RecipientID,
		RecipientType:   m.RecipientType,
		Status:          m.Status,
		RejectionReason: m.RejectionReason,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
	}
}
