package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// InventoryCountRepository define el puerto de persistencia de inventarios
// físicos y sus líneas.
type InventoryCountRepository interface {
	CreateCount(count *entity.InventoryCount) error
	GetCountByID(id string) (*entity.InventoryCount, error)
	// GetCountForUpdate bloquea el inventario para que validar/rechazar sea
	// un check-and-set atómico.
	GetCountForUpdate(id string) (*entity.InventoryCount, error)
	UpdateCount(count *entity.InventoryCount) error
	ListCounts(warehouseID, status string, limit, offset int) ([]*entity.InventoryCount, error)

	// UpsertLine crea o reemplaza la línea de un artículo dentro del conteo
	// (una línea por artículo y conteo).
	UpsertLine(line *entity.CountLine) error
	UpdateLine(line *entity.CountLine) error
	ListLines(countID string) ([]*entity.CountLine, error)
}
