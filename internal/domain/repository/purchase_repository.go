package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia de demandas de compra.
// ApproveFinance/RejectFinance son transiciones condicionales de la etapa
// financiera; la recepción usa GetByIDForUpdate + Update dentro de la misma
// transacción que incrementa el ledger.
type PurchaseRepository interface {
	Create(request *entity.PurchaseRequest) error
	GetByID(id string) (*entity.PurchaseRequest, error)
	GetByIDForUpdate(id string) (*entity.PurchaseRequest, error)
	ApproveFinance(id, approverID, note string, decidedAt time.Time) (bool, error)
	RejectFinance(id, approverID, note string, decidedAt time.Time) (bool, error)
	Update(request *entity.PurchaseRequest) error
	List(status string, limit, offset int) ([]*entity.PurchaseRequest, error)
}
