package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx). Un par (artículo, almacén) sin fila se lee como cantidad cero.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, article_id, warehouse_id, quantity, alert_threshold, expiry_date, updated_at`

// Get obtiene la fila de stock del par (artículo, almacén); cero si no existe.
func (r *StockRepo) Get(articleID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE article_id = $1 AND warehouse_id = $2`
	return r.scanOne(query, articleID, warehouseID)
}

// GetForUpdate obtiene la fila y la bloquea para update (SELECT FOR UPDATE).
// El bloqueo serializa mutaciones concurrentes sobre el mismo par sin frenar
// pares distintos. Si el par aún no tiene fila la crea en cero antes de
// bloquear: FOR UPDATE sobre una fila inexistente no bloquea nada y dos
// primeras mutaciones concurrentes se perderían entre sí.
func (r *StockRepo) GetForUpdate(articleID, warehouseID string) (*entity.Stock, error) {
	ensure := `
		INSERT INTO stock (id, article_id, warehouse_id, quantity, alert_threshold, updated_at)
		VALUES ($1, $2, $3, 0, 0, now())
		ON CONFLICT (article_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), ensure, uuid.New().String(), articleID, warehouseID); err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE article_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	return r.scanOne(query, articleID, warehouseID)
}

func (r *StockRepo) scanOne(query, articleID, warehouseID string) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, articleID, warehouseID).Scan(
		&s.ID, &s.ArticleID, &s.WarehouseID, &s.Quantity, &s.AlertThreshold, &s.ExpiryDate, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{
				ArticleID:      articleID,
				WarehouseID:    warehouseID,
				Quantity:       decimal.Zero,
				AlertThreshold: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la fila de stock (por artículo y almacén).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	if stock.ID == "" {
		stock.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock (id, article_id, warehouse_id, quantity, alert_threshold, expiry_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (article_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              alert_threshold = EXCLUDED.alert_threshold,
		              expiry_date = EXCLUDED.expiry_date,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.ArticleID, stock.WarehouseID, stock.Quantity, stock.AlertThreshold, stock.ExpiryDate,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// List lista filas de stock filtradas por artículo y/o almacén.
func (r *StockRepo) List(articleID, warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock
		WHERE ($1 = '' OR article_id = $1)
		  AND ($2 = '' OR warehouse_id = $2)
		ORDER BY updated_at DESC LIMIT $3 OFFSET $4`
	return r.scanList(query, articleID, warehouseID, limit, offset)
}

// ListBelowThreshold lista filas con cantidad bajo el umbral de alerta.
func (r *StockRepo) ListBelowThreshold(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock
		WHERE quantity < alert_threshold
		  AND ($1 = '' OR warehouse_id = $1)
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock alerts: %w", err)
	}
	return scanStockRows(rows)
}

func (r *StockRepo) scanList(query string, args ...any) ([]*entity.Stock, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return scanStockRows(rows)
}

func scanStockRows(rows pgx.Rows) ([]*entity.Stock, error) {
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.ArticleID, &s.WarehouseID, &s.Quantity, &s.AlertThreshold, &s.ExpiryDate, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
