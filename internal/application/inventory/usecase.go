package inventory

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

// TxRunner ejecuta la validación de un inventario en una sola transacción:
// o todas las líneas del conteo se aplican al ledger o ninguna.
type TxRunner interface {
	RunCount(ctx context.Context, fn func(
		countRepo repository.InventoryCountRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// UseCase implementa la reconciliación de inventario: un conteo in_progress
// acumula líneas sin efecto en el ledger; la validación sobrescribe cada
// cantidad registrada con la contada (escritura directa, no delta) y congela
// la varianza; el rechazo descarta todo efecto.
type UseCase struct {
	txRunner      TxRunner
	countRepo     repository.InventoryCountRepository
	stockRepo     repository.StockRepository
	articleRepo   repository.ArticleRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	countRepo repository.InventoryCountRepository,
	stockRepo repository.StockRepository,
	articleRepo repository.ArticleRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		countRepo:     countRepo,
		stockRepo:     stockRepo,
		articleRepo:   articleRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Create abre un inventario físico in_progress para un almacén.
func (uc *UseCase) Create(warehouseID, responsibleID, notes string) (*entity.InventoryCount, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if wh, err := uc.warehouseRepo.GetByID(warehouseID); err != nil {
		return nil, err
	} else if wh == nil {
		return nil, domain.ErrNotFound
	}
	c := &entity.InventoryCount{
		ID:            uuid.New().String(),
		WarehouseID:   warehouseID,
		ResponsibleID: responsibleID,
		Status:        entity.CountStatusInProgress,
		Notes:         notes,
		CreatedAt:     time.Now(),
	}
	if err := uc.countRepo.CreateCount(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddLine registra (o reemplaza) la cantidad contada de un artículo dentro de
// un conteo in_progress. Toma una foto de la cantidad del ledger para mostrar
// la varianza provisional, pero NO aplica nada: el ledger solo cambia en la
// validación, donde la foto se retoma bajo bloqueo de fila.
func (uc *UseCase) AddLine(countID, articleID string, counted decimal.Decimal) (*entity.CountLine, error) {
	if countID == "" || articleID == "" {
		return nil, domain.ErrInvalidInput
	}
	if counted.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	c, err := uc.countRepo.GetCountByID(countID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.Status != entity.CountStatusInProgress {
		return nil, domain.ErrAlreadyDecided
	}
	if article, err := uc.articleRepo.GetByID(articleID); err != nil {
		return nil, err
	} else if article == nil {
		return nil, domain.ErrNotFound
	}

	stock, err := uc.stockRepo.Get(articleID, c.WarehouseID)
	if err != nil {
		return nil, err
	}
	line := &entity.CountLine{
		ID:               uuid.New().String(),
		CountID:          countID,
		ArticleID:        articleID,
		CountedQuantity:  counted,
		RecordedQuantity: stock.Quantity,
		Variance:         counted.Sub(stock.Quantity),
		UpdatedAt:        time.Now(),
	}
	if err := uc.countRepo.UpsertLine(line); err != nil {
		return nil, err
	}
	return line, nil
}

// Validate cierra el conteo aplicando cada línea al ledger en una sola
// transacción: bloquea la fila de stock, retoma la cantidad registrada,
// congela variance = contada − registrada y sobrescribe la cantidad con la
// contada (Set directo, la única excepción sancionada al contrato
// Increase/Decrease). Una decisión repetida falla con ErrAlreadyDecided.
func (uc *UseCase) Validate(ctx context.Context, countID, validatorID string) (*entity.InventoryCount, error) {
	var validated *entity.InventoryCount
	err := uc.txRunner.RunCount(ctx, func(
		countRepo repository.InventoryCountRepository,
		stockRepo repository.StockRepository,
	) error {
		c, err := countRepo.GetCountForUpdate(countID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if c.Status != entity.CountStatusInProgress {
			return domain.ErrAlreadyDecided
		}
		lines, err := countRepo.ListLines(countID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, line := range lines {
			stock, err := stockRepo.GetForUpdate(line.ArticleID, c.WarehouseID)
			if err != nil {
				return err
			}
			recorded := stock.Quantity
			if _, err := ledger.Set(stockRepo, line.ArticleID, c.WarehouseID, line.CountedQuantity, now); err != nil {
				return err
			}
			line.RecordedQuantity = recorded
			line.Variance = line.CountedQuantity.Sub(recorded)
			line.UpdatedAt = now
			if err := countRepo.UpdateLine(line); err != nil {
				return err
			}
		}
		c.Status = entity.CountStatusValidated
		c.ValidatorID = validatorID
		c.ValidatedAt = &now
		if err := countRepo.UpdateCount(c); err != nil {
			return err
		}
		validated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return validated, nil
}

// Reject cierra el conteo sin ningún efecto en el ledger y registra la razón.
// Una decisión repetida falla con ErrAlreadyDecided.
func (uc *UseCase) Reject(ctx context.Context, countID, validatorID, reason string) (*entity.InventoryCount, error) {
	var rejected *entity.InventoryCount
	err := uc.txRunner.RunCount(ctx, func(
		countRepo repository.InventoryCountRepository,
		_ repository.StockRepository,
	) error {
		c, err := countRepo.GetCountForUpdate(countID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if c.Status != entity.CountStatusInProgress {
			return domain.ErrAlreadyDecided
		}
		now := time.Now()
		c.Status = entity.CountStatusRejected
		c.ValidatorID = validatorID
		c.Reason = reason
		c.ValidatedAt = &now
		if err := countRepo.UpdateCount(c); err != nil {
			return err
		}
		rejected = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

// GetByID devuelve un inventario con sus líneas.
func (uc *UseCase) GetByID(id string) (*entity.InventoryCount, []*entity.CountLine, error) {
	c, err := uc.countRepo.GetCountByID(id)
	if err != nil {
		return nil, nil, err
	}
	if c == nil {
		return nil, nil, domain.ErrNotFound
	}
	lines, err := uc.countRepo.ListLines(id)
	if err != nil {
		return nil, nil, err
	}
	return c, lines, nil
}

// List lista inventarios filtrados por almacén y/o estado.
func (uc *UseCase) List(warehouseID, status string, limit, offset int) ([]*entity.InventoryCount, error) {
	return uc.countRepo.ListCounts(warehouseID, status, limit, offset)
}
