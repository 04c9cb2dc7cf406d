package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia de movimientos.
type MovementRepository interface {
	// CreateIfAbsent inserta el movimiento solo si su ID no existe todavía
	// (ON CONFLICT DO NOTHING) y devuelve si la fila fue insertada. Es la
	// pieza del check-and-set idempotente: un reintento del mismo movimiento
	// no vuelve a mutar el ledger.
	CreateIfAbsent(movement *entity.Movement) (bool, error)
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	List(articleID, warehouseID string, limit, offset int) ([]*entity.Movement, error)
}
