package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar stock por
// artículo+almacén. Get y GetForUpdate devuelven una fila en cero si no
// existe (lookup-or-create idempotente). Usado dentro de transacciones para
// garantizar consistencia.
type StockRepository interface {
	Get(articleID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Si el par
	// no tiene fila todavía la crea en cero dentro de la misma transacción,
	// de modo que el bloqueo exista también para la primera mutación.
	GetForUpdate(articleID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	List(articleID, warehouseID string, limit, offset int) ([]*entity.Stock, error)
	// ListBelowThreshold lista filas con cantidad bajo el umbral de alerta.
	ListBelowThreshold(warehouseID string, limit, offset int) ([]*entity.Stock, error)
}
