package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/movement"
	"github.com/jhoicas/Almacen-api/internal/application/purchase"
	"github.com/jhoicas/Almacen-api/internal/application/transfer"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Comprobación de que TxRunner satisface los puertos de cada workflow.
var _ movement.TxRunner = (*TxRunner)(nil)
var _ transfer.TxRunner = (*TxRunner)(nil)
var _ purchase.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repositorios atados a esa tx. Cada mutación del ledger comparte transacción
// con el check-and-set de estado de su workflow.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run inicia una transacción con los repositorios del procesador de
// movimientos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewMovementRepository(tx), NewStockRepository(tx))
	})
}

// RunTransfer inicia una transacción para la confirmación de recepción de
// una transferencia.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewTransferRepository(tx), NewStockRepository(tx))
	})
}

// RunPurchase inicia una transacción para la recepción física de una compra.
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewPurchaseRepository(tx), NewStockRepository(tx))
	})
}

// RunCount inicia una transacción para validar o rechazar un inventario:
// todas las líneas del conteo se aplican o ninguna.
func (r *TxRunner) RunCount(ctx context.Context, fn func(
	countRepo repository.InventoryCountRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewInventoryCountRepository(tx), NewStockRepository(tx))
	})
}
