package replenishment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UseCase implementa el workflow de reaprovisionamiento: una demanda pendiente
// recibe exactamente una decisión (approve o reject). La aprobación registra
// la cantidad autorizada; nunca muta el ledger — solo habilita al almacén a
// emitir después el movimiento o la compra correspondiente.
type UseCase struct {
	repo          repository.ReplenishmentRepository
	articleRepo   repository.ArticleRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.ReplenishmentRepository,
	articleRepo repository.ArticleRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{repo: repo, articleRepo: articleRepo, warehouseRepo: warehouseRepo}
}

// CreateInput entrada para levantar una demanda.
type CreateInput struct {
	WarehouseID       string
	ArticleID         string
	QuantityRequested decimal.Decimal
	Priority          string
	RequesterID       string
	Notes             string
}

// Create registra una demanda pendiente.
func (uc *UseCase) Create(in CreateInput) (*entity.ReplenishmentRequest, error) {
	if in.WarehouseID == "" || in.ArticleID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.QuantityRequested.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	switch in.Priority {
	case "":
		in.Priority = entity.PriorityNormal
	case entity.PriorityLow, entity.PriorityNormal, entity.PriorityHigh:
	default:
		return nil, domain.ErrInvalidInput
	}
	if article, err := uc.articleRepo.GetByID(in.ArticleID); err != nil {
		return nil, err
	} else if article == nil {
		return nil, domain.ErrNotFound
	}
	if wh, err := uc.warehouseRepo.GetByID(in.WarehouseID); err != nil {
		return nil, err
	} else if wh == nil {
		return nil, domain.ErrNotFound
	}

	r := &entity.ReplenishmentRequest{
		ID:                uuid.New().String(),
		WarehouseID:       in.WarehouseID,
		ArticleID:         in.ArticleID,
		QuantityRequested: in.QuantityRequested,
		Priority:          in.Priority,
		Status:            entity.ReplenishmentStatusPending,
		RequesterID:       in.RequesterID,
		DecisionNote:      in.Notes,
		CreatedAt:         time.Now(),
	}
	if err := uc.repo.Create(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Approve decide la demanda. quantityApproved es opcional: por defecto se
// aprueba la cantidad solicitada. Una segunda decisión sobre la misma demanda
// falla con ErrAlreadyDecided.
func (uc *UseCase) Approve(id, approverID string, quantityApproved *decimal.Decimal, note string) (*entity.ReplenishmentRequest, error) {
	r, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	qty := r.QuantityRequested
	if quantityApproved != nil {
		if !quantityApproved.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidAmount
		}
		qty = *quantityApproved
	}
	decidedAt := time.Now()
	ok, err := uc.repo.Approve(id, approverID, qty, note, decidedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyDecided
	}
	r.Status = entity.ReplenishmentStatusApproved
	r.QuantityApproved = &qty
	r.ApproverID = approverID
	r.DecisionNote = note
	r.DecidedAt = &decidedAt
	return r, nil
}

// Reject decide la demanda en negativo con una nota. Idempotencia: la
// segunda decisión falla con ErrAlreadyDecided.
func (uc *UseCase) Reject(id, approverID, note string) (*entity.ReplenishmentRequest, error) {
	r, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	decidedAt := time.Now()
	ok, err := uc.repo.Reject(id, approverID, note, decidedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyDecided
	}
	r.Status = entity.ReplenishmentStatusRejected
	r.ApproverID = approverID
	r.DecisionNote = note
	r.DecidedAt = &decidedAt
	return r, nil
}

// GetByID devuelve una demanda por ID.
func (uc *UseCase) GetByID(id string) (*entity.ReplenishmentRequest, error) {
	return uc.repo.GetByID(id)
}

// List lista demandas filtradas por almacén y/o estado.
func (uc *UseCase) List(warehouseID, status string, limit, offset int) ([]*entity.ReplenishmentRequest, error) {
	return uc.repo.List(warehouseID, status, limit, offset)
}
