package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta la recepción física en una transacción: el check-and-set
// del estado de recepción y el incremento del ledger comparten
// Commit/Rollback.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// UseCase implementa el workflow de compra con dos etapas ordenadas sobre la
// misma entidad: la aprobación financiera (externa al almacén) y la recepción
// física, que incrementa el ledger exactamente una vez.
type UseCase struct {
	txRunner      TxRunner
	repo          repository.PurchaseRepository
	articleRepo   repository.ArticleRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	repo repository.PurchaseRepository,
	articleRepo repository.ArticleRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo, articleRepo: articleRepo, warehouseRepo: warehouseRepo}
}

// CreateInput entrada para levantar una demanda de compra.
type CreateInput struct {
	ArticleID       string
	Quantity        decimal.Decimal
	EstimatedAmount decimal.Decimal
	WarehouseID     string
	RequesterID     string
	Notes           string
}

// Create registra una demanda de compra pendiente en ambas etapas.
func (uc *UseCase) Create(in CreateInput) (*entity.PurchaseRequest, error) {
	if in.ArticleID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if in.EstimatedAmount.IsNegative() {
		return nil, domain.ErrInvalidAmount
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

	p := &entity.PurchaseRequest{
		ID:              uuid.New().String(),
		ArticleID:       in.ArticleID,
		Quantity:        in.Quantity,
		EstimatedAmount: in.EstimatedAmount,
		Status:          entity.PurchaseStatusPending,
		ReceptionStatus: entity.ReceptionStatusPending,
		RequesterID:     in.RequesterID,
		WarehouseID:     in.WarehouseID,
		DecisionNote:    in.Notes,
		CreatedAt:       time.Now(),
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ApproveFinance aprueba la etapa financiera. Una segunda decisión falla con
// ErrAlreadyDecided.
func (uc *UseCase) ApproveFinance(id, approverID, note string) (*entity.PurchaseRequest, error) {
	return uc.decideFinance(id, approverID, note, true)
}

// RejectFinance rechaza la etapa financiera. Una segunda decisión falla con
// ErrAlreadyDecided.
func (uc *UseCase) RejectFinance(id, approverID, note string) (*entity.PurchaseRequest, error) {
	return uc.decideFinance(id, approverID, note, false)
}

func (uc *UseCase) decideFinance(id, approverID, note string, approve bool) (*entity.PurchaseRequest, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	decidedAt := time.Now()
	var ok bool
	if approve {
		ok, err = uc.repo.ApproveFinance(id, approverID, note, decidedAt)
		p.Status = entity.PurchaseStatusApproved
	} else {
		ok, err = uc.repo.RejectFinance(id, approverID, note, decidedAt)
		p.Status = entity.PurchaseStatusRejected
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyDecided
	}
	p.FinanceApproverID = approverID
	p.DecisionNote = note
	p.DecidedAt = &decidedAt
	return p, nil
}

// Receive registra la recepción física: exige aprobación financiera previa
// (ErrNotApproved), falla con ErrAlreadyReceived en el segundo intento y, en
// la misma transacción, incrementa el ledger del almacén receptor exactamente
// una vez.
func (uc *UseCase) Receive(ctx context.Context, purchaseID, receiverID string) (*entity.PurchaseRequest, error) {
	var received *entity.PurchaseRequest
	err := uc.txRunner.RunPurchase(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		stockRepo repository.StockRepository,
	) error {
		p, err := purchaseRepo.GetByIDForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Status != entity.PurchaseStatusApproved {
			return domain.ErrNotApproved
		}
		if p.ReceptionStatus == entity.ReceptionStatusReceived {
			return domain.ErrAlreadyReceived
		}
		now := time.Now()
		if _, err := ledger.Increase(stockRepo, p.ArticleID, p.WarehouseID, p.Quantity, now); err != nil {
			return err
		}
		p.ReceptionStatus = entity.ReceptionStatusReceived
		p.ReceivedAt = &now
		if err := purchaseRepo.Update(p); err != nil {
			return err
		}
		received = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}

// GetByID devuelve una demanda de compra por ID.
func (uc *UseCase) GetByID(id string) (*entity.PurchaseRequest, error) {
	return uc.repo.GetByID(id)
}

// List lista demandas de compra filtradas por estado financiero.
func (uc *UseCase) List(status string, limit, offset int) ([]*entity.PurchaseRequest, error) {
	return uc.repo.List(status, limit, offset)
}
