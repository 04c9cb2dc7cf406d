package transfer

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

// TxRunner ejecuta la confirmación de recepción en una transacción: el
// check-and-set del estado de la transferencia y el incremento del ledger
// comparten Commit/Rollback.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// UseCase implementa el workflow de transferencia en dos fases: el despacho
// registra la intención sin tocar el ledger; la recepción incrementa el
// almacén destino exactamente una vez. La transferencia no debita el almacén
// origen: los callers que dependan de esa depleción emiten un movimiento
// issue separado antes de despachar.
type UseCase struct {
	txRunner      TxRunner
	transferRepo  repository.TransferRepository
	articleRepo   repository.ArticleRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	articleRepo repository.ArticleRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		articleRepo:   articleRepo,
		warehouseRepo: warehouseRepo,
	}
}

// CreateInput entrada para despachar una transferencia.
type CreateInput struct {
	ArticleID     string
	SourceID      string
	DestinationID string
	Quantity      decimal.Decimal
	InitiatorID   string
	Notes         string
}

// Create registra una transferencia pendiente. No tiene efecto en el ledger.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Transfer, error) {
	if in.ArticleID == "" || in.SourceID == "" || in.DestinationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceID == in.DestinationID {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if article, err := uc.articleRepo.GetByID(in.ArticleID); err != nil {
		return nil, err
	} else if article == nil {
		return nil, domain.ErrNotFound
	}
	for _, id := range []string{in.SourceID, in.DestinationID} {
		if wh, err := uc.warehouseRepo.GetByID(id); err != nil {
			return nil, err
		} else if wh == nil {
			return nil, domain.ErrNotFound
		}
	}

	t := &entity.Transfer{
		ID:            uuid.New().String(),
		ArticleID:     in.ArticleID,
		SourceID:      in.SourceID,
		DestinationID: in.DestinationID,
		Quantity:      in.Quantity,
		InitiatorID:   in.InitiatorID,
		Status:        entity.TransferStatusPending,
		Notes:         in.Notes,
		CreatedAt:     time.Now(),
	}
	if err := uc.transferRepo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Receive confirma la recepción: bloquea la fila de la transferencia, falla
// con ErrAlreadyReceived si ya es terminal y, en caso contrario, marca
// received e incrementa el ledger del almacén destino en la misma
// transacción.
func (uc *UseCase) Receive(ctx context.Context, transferID, receiverID string) (*entity.Transfer, error) {
	var received *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
	) error {
		t, err := transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Status == entity.TransferStatusReceived {
			return domain.ErrAlreadyReceived
		}
		now := time.Now()
		if _, err := ledger.Increase(stockRepo, t.ArticleID, t.DestinationID, t.Quantity, now); err != nil {
			return err
		}
		t.Status = entity.TransferStatusReceived
		t.ReceiverID = receiverID
		t.ReceivedAt = &now
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		received = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return received, nil
}

// GetByID devuelve una transferencia por ID.
func (uc *UseCase) GetByID(id string) (*entity.Transfer, error) {
	return uc.transferRepo.GetByID(id)
}

// List lista transferencias, opcionalmente filtradas por almacén
// (origen o destino).
func (uc *UseCase) List(warehouseID string, limit, offset int) ([]*entity.Transfer, error) {
	return uc.transferRepo.List(warehouseID, limit, offset)
}
