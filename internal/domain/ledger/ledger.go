// Package ledger contiene el servicio de dominio que gobierna la cantidad
// disponible por (artículo, almacén). Increase, Decrease y Set son la única
// vía legal para cambiar Stock.Quantity; el resto de componentes componen
// sobre ellas. Todas esperan un StockRepository atado a una transacción con
// bloqueo de fila (GetForUpdate), de modo que mutaciones concurrentes sobre
// el mismo par queden serializadas y pares distintos no se bloqueen entre sí.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Get devuelve la fila de stock del par (artículo, almacén); el repositorio
// entrega una fila en cero si no existe todavía.
func Get(repo repository.StockRepository, articleID, warehouseID string) (*entity.Stock, error) {
	return repo.Get(articleID, warehouseID)
}

// Increase suma amount a la cantidad disponible. Falla con ErrInvalidAmount
// si amount no es estrictamente positivo.
func Increase(repo repository.StockRepository, articleID, warehouseID string, amount decimal.Decimal, now time.Time) (*entity.Stock, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	stock, err := repo.GetForUpdate(articleID, warehouseID)
	if err != nil {
		return nil, err
	}
	stock.Quantity = stock.Quantity.Add(amount)
	stock.UpdatedAt = now
	if err := repo.Upsert(stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// Decrease resta amount de la cantidad disponible. Falla con ErrInvalidAmount
// si amount no es estrictamente positivo y con ErrInsufficientStock si la
// cantidad actual es menor que amount; en ambos casos no deja ningún efecto.
func Decrease(repo repository.StockRepository, articleID, warehouseID string, amount decimal.Decimal, now time.Time) (*entity.Stock, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	stock, err := repo.GetForUpdate(articleID, warehouseID)
	if err != nil {
		return nil, err
	}
	if stock.Quantity.LessThan(amount) {
		return nil, domain.ErrInsufficientStock
	}
	stock.Quantity = stock.Quantity.Sub(amount)
	stock.UpdatedAt = now
	if err := repo.Upsert(stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// Set sobrescribe la cantidad con un valor absoluto (no un delta). Es la
// única excepción sancionada al contrato Increase/Decrease y se ejecuta solo
// dentro de la transacción de validación de un inventario físico. Admite
// cero pero no valores negativos.
func Set(repo repository.StockRepository, articleID, warehouseID string, quantity decimal.Decimal, now time.Time) (*entity.Stock, error) {
	if quantity.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	stock, err := repo.GetForUpdate(articleID, warehouseID)
	if err != nil {
		return nil, err
	}
	stock.Quantity = quantity
	stock.UpdatedAt = now
	if err := repo.Upsert(stock); err != nil {
		return nil, err
	}
	return stock, nil
}
