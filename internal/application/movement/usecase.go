package movement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ProcessUseCase valida y aplica un movimiento de stock contra el ledger de
// forma transaccional: el insert idempotente del movimiento y la mutación de
// la fila de stock (SELECT FOR UPDATE) comparten Commit/Rollback.
type ProcessUseCase struct {
	txRunner      TxRunner
	movRepo       repository.MovementRepository // atado al pool: persistencia de rechazos y listados
	articleRepo   repository.ArticleRepository
	warehouseRepo repository.WarehouseRepository
	authorizer    IssueAuthorizer
}

// NewProcessUseCase construye el caso de uso.
func NewProcessUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	articleRepo repository.ArticleRepository,
	warehouseRepo repository.WarehouseRepository,
	authorizer IssueAuthorizer,
) *ProcessUseCase {
	return &ProcessUseCase{
		txRunner:      txRunner,
		movRepo:       movRepo,
		articleRepo:   articleRepo,
		warehouseRepo: warehouseRepo,
		authorizer:    authorizer,
	}
}

// Input entrada para procesar un movimiento. Credential es el token portador
// del actor, consultado contra el colaborador de autorización cuando el
// movimiento retira stock de un almacén concreto (issue).
type Input struct {
	ID            string // opcional: UUID del cliente para reintentos idempotentes
	ArticleID     string
	Type          string
	Quantity      decimal.Decimal
	SourceID      string
	DestinationID string
	ActorID       string
	RecipientID   string
	RecipientType string
	Notes         string
	Credential    string
}

// Process valida el movimiento por tipo, consulta la autorización externa en
// los issue y aplica la mutación del ledger. En éxito el movimiento queda
// persistido como applied; en un fallo de negocio queda persistido como
// rejected con la razón, y el error se devuelve al caller sin dejar estado
// parcial. El booleano indica si esta llamada aplicó el movimiento: el
// reintento de uno ya aplicado devuelve la fila almacenada con false.
func (uc *ProcessUseCase) Process(ctx context.Context, in Input) (*entity.Movement, bool, error) {
	if err := uc.validate(in); err != nil {
		return nil, false, err
	}

	if article, err := uc.articleRepo.GetByID(in.ArticleID); err != nil {
		return nil, false, err
	} else if article == nil {
		return nil, false, domain.ErrNotFound
	}
	if err := uc.checkWarehouses(in); err != nil {
		return nil, false, err
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:            in.ID,
		ArticleID:     in.ArticleID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		SourceID:      in.SourceID,
		DestinationID: in.DestinationID,
		ActorID:       in.ActorID,
		RecipientID:   in.RecipientID,
		RecipientType: in.RecipientType,
		Notes:         in.Notes,
		Status:        entity.MovementStatusApplied,
		CreatedAt:     now,
	}
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}

	// La consulta de capacidad ocurre antes de abrir la transacción: si el
	// colaborador niega o no responde, el ledger queda intacto.
	if in.Type == entity.MovementTypeIssue {
		if _, err := uc.authorizer.AuthorizeIssue(ctx, in.Credential, in.SourceID); err != nil {
			return uc.reject(mov, err)
		}
	}

	applied := true
	result := mov
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		inserted, err := movRepo.CreateIfAbsent(mov)
		if err != nil {
			return err
		}
		if !inserted {
			// Reintento de un movimiento ya aplicado: el ledger cambió
			// exactamente una vez y la repetición es un éxito sin efecto.
			// Se devuelve la fila almacenada, no el input recién construido.
			applied = false
			prev, err := movRepo.GetByID(mov.ID)
			if err != nil {
				return err
			}
			if prev != nil {
				result = prev
			}
			return nil
		}
		switch in.Type {
		case entity.MovementTypeReceipt, entity.MovementTypeReturn:
			_, err = ledger.Increase(stockRepo, in.ArticleID, in.DestinationID, in.Quantity, now)
		case entity.MovementTypeIssue:
			_, err = ledger.Decrease(stockRepo, in.ArticleID, in.SourceID, in.Quantity, now)
		case entity.MovementTypeTransfer, entity.MovementTypeCount:
			// Informativos: transfer lo aplica el workflow de transferencia y
			// count la reconciliación; aquí no se toca el ledger.
		}
		return err
	})
	if err != nil {
		if isBusinessError(err) {
			return uc.reject(mov, err)
		}
		return nil, false, err
	}
	return result, applied, nil
}

// reject persiste el movimiento como rejected con la razón del fallo y
// devuelve el error original al caller. El registro rechazado recibe un ID
// propio: los ID del cliente solo marcan movimientos aplicados, de modo que
// un reintento tras corregir la causa pueda aplicarse.
func (uc *ProcessUseCase) reject(mov *entity.Movement, cause error) (*entity.Movement, bool, error) {
	rejected := *mov
	rejected.ID = uuid.New().String()
	rejected.Status = entity.MovementStatusRejected
	rejected.RejectionReason = cause.Error()
	if err := uc.movRepo.Create(&rejected); err != nil {
		return nil, false, err
	}
	return &rejected, false, cause
}

func (uc *ProcessUseCase) validate(in Input) error {
	if in.ArticleID == "" {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	switch in.Type {
	case entity.MovementTypeReceipt, entity.MovementTypeReturn:
		if in.DestinationID == "" {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeIssue:
		if in.SourceID == "" {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTransfer:
		if in.SourceID == "" || in.DestinationID == "" || in.SourceID == in.DestinationID {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeCount:
		// sin requisitos de almacén: informativo
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *ProcessUseCase) checkWarehouses(in Input) error {
	for _, id := range []string{in.SourceID, in.DestinationID} {
		if id == "" {
			continue
		}
		wh, err := uc.warehouseRepo.GetByID(id)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// isBusinessError distingue los fallos de negocio (se persisten como rechazo)
// de los fallos de infraestructura (se propagan como error interno).
func isBusinessError(err error) bool {
	return errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrServiceUnavailable)
}

// GetByID devuelve un movimiento por ID.
func (uc *ProcessUseCase) GetByID(id string) (*entity.Movement, error) {
	return uc.movRepo.GetByID(id)
}

// List lista movimientos filtrados por artículo y/o almacén.
func (uc *ProcessUseCase) List(articleID, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.List(articleID, warehouseID, limit, offset)
}
