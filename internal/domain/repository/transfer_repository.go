package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia de transferencias.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetByIDForUpdate bloquea la fila de la transferencia (SELECT FOR UPDATE)
	// para que la confirmación de recepción sea un check-and-set atómico.
	GetByIDForUpdate(id string) (*entity.Transfer, error)
	Update(transfer *entity.Transfer) error
	List(warehouseID string, limit, offset int) ([]*entity.Transfer, error)
}
