package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ReplenishmentRepository define el puerto de persistencia de demandas de
// reaprovisionamiento. Approve y Reject son transiciones condicionales
// (UPDATE ... WHERE status = 'pending'): devuelven false si la demanda ya
// tenía una decisión terminal.
type ReplenishmentRepository interface {
	Create(request *entity.ReplenishmentRequest) error
	GetByID(id string) (*entity.ReplenishmentRequest, error)
	Approve(id, approverID string, quantityApproved decimal.Decimal, note string, decidedAt time.Time) (bool, error)
	Reject(id, approverID, note string, decidedAt time.Time) (bool, error)
	List(warehouseID, status string, limit, offset int) ([]*entity.ReplenishmentRequest, error)
}
