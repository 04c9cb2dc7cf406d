package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ReplenishmentRepository = (*ReplenishmentRepo)(nil)

// ReplenishmentRepo implementación de ReplenishmentRepository sobre PostgreSQL.
type ReplenishmentRepo struct {
	q Querier
}

// NewReplenishmentRepository construye el adaptador de demandas de
// reaprovisionamiento.
func NewReplenishmentRepository(q Querier) *ReplenishmentRepo {
	return &ReplenishmentRepo{q: q}
}

const replenishmentColumns = `id, warehouse_id, article_id, quantity_requested, quantity_approved,
	priority, status, requester_id, approver_id, decision_note, created_at, decided_at`

// Create inserta una demanda en estado pending.
func (r *ReplenishmentRepo) Create(req *entity.ReplenishmentRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	query := `
		INSERT INTO replenishment_requests (id, warehouse_id, article_id, quantity_requested,
			quantity_approved, priority, status, requester_id, approver_id, decision_note,
			created_at, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.WarehouseID, req.ArticleID, req.QuantityRequested,
		req.QuantityApproved, req.Priority, req.Status, req.RequesterID, req.ApproverID,
		req.DecisionNote, req.CreatedAt, req.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("insert replenishment request: %w", err)
	}
	return nil
}

// GetByID obtiene una demanda por su ID; nil si no existe.
func (r *ReplenishmentRepo) GetByID(id string) (*entity.ReplenishmentRequest, error) {
	query := `
		SELECT ` + replenishmentColumns + `
		FROM replenishment_requests WHERE id = $1`
	var req entity.ReplenishmentRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&req.ID, &req.WarehouseID, &req.ArticleID, &req.QuantityRequested, &req.QuantityApproved,
		&req.Priority, &req.Status, &req.RequesterID, &req.ApproverID, &req.DecisionNote,
		&req.CreatedAt, &req.DecidedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get replenishment request: %w", err)
	}
	return &req, nil
}

// Approve transiciona pending -> approved de forma condicional. Devuelve false
// si la demanda ya tenía una decisión terminal (la condición WHERE no matchea).
func (r *ReplenishmentRepo) Approve(id, approverID string, quantityApproved decimal.Decimal, note string, decidedAt time.Time) (bool, error) {
	query := `
		UPDATE replenishment_requests
		SET status = $2, approver_id = $3, quantity_approved = $4, decision_note = $5, decided_at = $6
		WHERE id = $1 AND status = $7`
	cmd, err := r.q.Exec(context.Background(), query,
		id, entity.ReplenishmentStatusApproved, approverID, quantityApproved, note, decidedAt,
		entity.ReplenishmentStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("approve replenishment request: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Reject transiciona pending -> rejected de forma condicional.
func (r *ReplenishmentRepo) Reject(id, approverID, note string, decidedAt time.Time) (bool, error) {
	query := `
		UPDATE replenishment_requests
		SET status = $2, approver_id = $3, decision_note = $4, decided_at = $5
		WHERE id = $1 AND status = $6`
	cmd, err := r.q.Exec(context.Background(), query,
		id, entity.ReplenishmentStatusRejected, approverID, note, decidedAt,
		entity.ReplenishmentStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("reject replenishment request: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// List lista demandas filtradas por almacén y/o estado.
func (r *ReplenishmentRepo) List(warehouseID, status string, limit, offset int) ([]*entity.ReplenishmentRequest, error) {
	query := `
		SELECT ` + replenishmentColumns + `
		FROM replenishment_requests
		WHERE ($1 = '' OR warehouse_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, warehouseID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list replenishment requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.ReplenishmentRequest
	for rows.Next() {
		var req entity.ReplenishmentRequest
		if err := rows.Scan(
			&req.ID, &req.WarehouseID, &req.ArticleID, &req.QuantityRequested, &req.QuantityApproved,
			&req.Priority, &req.Status, &req.RequesterID, &req.ApproverID, &req.DecisionNote,
			&req.CreatedAt, &req.DecidedAt,
		); err != nil {
			return nil, fmt.Errorf("scan replenishment request: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}
