package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.InventoryCountRepository = (*InventoryCountRepo)(nil)

// InventoryCountRepo implementación de InventoryCountRepository sobre
// PostgreSQL. Las líneas viven en count_lines con unicidad por
// (count_id, article_id).
type InventoryCountRepo struct {
	q Querier
}

// NewInventoryCountRepository construye el adaptador de inventarios físicos.
func NewInventoryCountRepository(q Querier) *InventoryCountRepo {
	return &InventoryCountRepo{q: q}
}

const countColumns = `id, warehouse_id, responsible_id, status, validator_id, reason, notes,
	created_at, validated_at`

// CreateCount inserta un inventario en estado in_progress.
func (r *InventoryCountRepo) CreateCount(c *entity.InventoryCount) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_counts (id, warehouse_id, responsible_id, status, validator_id,
			reason, notes, created_at, validated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.WarehouseID, c.ResponsibleID, c.Status, c.ValidatorID,
		c.Reason, c.Notes, c.CreatedAt, c.ValidatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory count: %w", err)
	}
	return nil
}

// GetCountByID obtiene un inventario por su ID; nil si no existe.
func (r *InventoryCountRepo) GetCountByID(id string) (*entity.InventoryCount, error) {
	query := `
		SELECT ` + countColumns + `
		FROM inventory_counts WHERE id = $1`
	return r.scanCount(query, id)
}

// GetCountForUpdate obtiene el inventario bloqueando la fila (FOR UPDATE) para
// que validar y rechazar sean check-and-set atómicos.
func (r *InventoryCountRepo) GetCountForUpdate(id string) (*entity.InventoryCount, error) {
	query := `
		SELECT ` + countColumns + `
		FROM inventory_counts WHERE id = $1
		FOR UPDATE`
	return r.scanCount(query, id)
}

func (r *InventoryCountRepo) scanCount(query, id string) (*entity.InventoryCount, error) {
	var c entity.InventoryCount
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.WarehouseID, &c.ResponsibleID, &c.Status, &c.ValidatorID, &c.Reason, &c.Notes,
		&c.CreatedAt, &c.ValidatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory count: %w", err)
	}
	return &c, nil
}

// UpdateCount persiste los cambios de estado del inventario.
func (r *InventoryCountRepo) UpdateCount(c *entity.InventoryCount) error {
	query := `
		UPDATE inventory_counts
		SET status = $2, validator_id = $3, reason = $4, notes = $5, validated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Status, c.ValidatorID, c.Reason, c.Notes, c.ValidatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory count: %w", err)
	}
	return nil
}

// ListCounts lista inventarios filtrados por almacén y/o estado.
func (r *InventoryCountRepo) ListCounts(warehouseID, status string, limit, offset int) ([]*entity.InventoryCount, error) {
	query := `
		SELECT ` + countColumns + `
		FROM inventory_counts
		WHERE ($1 = '' OR warehouse_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, warehouseID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory counts: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryCount
	for rows.Next() {
		var c entity.InventoryCount
		if err := rows.Scan(
			&c.ID, &c.WarehouseID, &c.ResponsibleID, &c.Status, &c.ValidatorID, &c.Reason, &c.Notes,
			&c.CreatedAt, &c.ValidatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory count: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

const lineColumns = `id, count_id, article_id, counted_quantity, recorded_quantity, variance, updated_at`

// UpsertLine crea o reemplaza la línea de un artículo en el conteo. Repetir el
// conteo de un artículo sobrescribe la cantidad contada anterior.
func (r *InventoryCountRepo) UpsertLine(line *entity.CountLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO count_lines (id, count_id, article_id, counted_quantity, recorded_quantity,
			variance, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (count_id, article_id)
		DO UPDATE SET counted_quantity = EXCLUDED.counted_quantity,
		              recorded_quantity = EXCLUDED.recorded_quantity,
		              variance = EXCLUDED.variance,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.CountID, line.ArticleID, line.CountedQuantity, line.RecordedQuantity, line.Variance,
	)
	if err != nil {
		return fmt.Errorf("upsert count line: %w", err)
	}
	return nil
}

// UpdateLine persiste la foto del ledger y la varianza congeladas al validar.
func (r *InventoryCountRepo) UpdateLine(line *entity.CountLine) error {
	query := `
		UPDATE count_lines
		SET recorded_quantity = $2, variance = $3, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.RecordedQuantity, line.Variance,
	)
	if err != nil {
		return fmt.Errorf("update count line: %w", err)
	}
	return nil
}

// ListLines lista las líneas de un inventario.
func (r *InventoryCountRepo) ListLines(countID string) ([]*entity.CountLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM count_lines
		WHERE count_id = $1
		ORDER BY article_id`
	rows, err := r.q.Query(context.Background(), query, countID)
	if err != nil {
		return nil, fmt.Errorf("list count lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.CountLine
	for rows.Next() {
		var l entity.CountLine
		if err := rows.Scan(
			&l.ID, &l.CountID, &l.ArticleID, &l.CountedQuantity, &l.RecordedQuantity, &l.Variance, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan count line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
