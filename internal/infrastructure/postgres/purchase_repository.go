package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de demandas de compra.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, article_id, quantity, estimated_amount, status, reception_status,
	requester_id, finance_approver_id, warehouse_id, decision_note, created_at, decided_at, received_at`

// Create inserta una demanda de compra con ambas etapas en pending.
func (r *PurchaseRepo) Create(req *entity.PurchaseRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchase_requests (id, article_id, quantity, estimated_amount, status,
			reception_status, requester_id, finance_approver_id, warehouse_id, decision_note,
			created_at, decided_at, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.ArticleID, req.Quantity, req.EstimatedAmount, req.Status,
		req.ReceptionStatus, req.RequesterID, req.FinanceApproverID, req.WarehouseID,
		req.DecisionNote, req.CreatedAt, req.DecidedAt, req.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase request: %w", err)
	}
	return nil
}

// GetByID obtiene una demanda de compra por su ID; nil si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.PurchaseRequest, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchase_requests WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene la demanda bloqueando la fila (FOR UPDATE) para que
// la recepción física sea un check-and-set atómico.
func (r *PurchaseRepo) GetByIDForUpdate(id string) (*entity.PurchaseRequest, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchase_requests WHERE id = $1
		FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *PurchaseRepo) scanOne(query, id string) (*entity.PurchaseRequest, error) {
	var req entity.PurchaseRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&req.ID, &req.ArticleID, &req.Quantity, &req.EstimatedAmount, &req.Status, &req.ReceptionStatus,
		&req.RequesterID, &req.FinanceApproverID, &req.WarehouseID, &req.DecisionNote,
		&req.CreatedAt, &req.DecidedAt, &req.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase request: %w", err)
	}
	return &req, nil
}

// ApproveFinance transiciona la etapa financiera pending -> approved de forma
// condicional; false si ya había una decisión terminal.
func (r *PurchaseRepo) ApproveFinance(id, approverID, note string, decidedAt time.Time) (bool, error) {
	return r.decideFinance(id, approverID, note, entity.PurchaseStatusApproved, decidedAt)
}

// RejectFinance transiciona la etapa financiera pending -> rejected de forma
// condicional.
func (r *PurchaseRepo) RejectFinance(id, approverID, note string, decidedAt time.Time) (bool, error) {
	return r.decideFinance(id, approverID, note, entity.PurchaseStatusRejected, decidedAt)
}

func (r *PurchaseRepo) decideFinance(id, approverID, note, status string, decidedAt time.Time) (bool, error) {
	query := `
		UPDATE purchase_requests
		SET status = $2, finance_approver_id = $3, decision_note = $4, decided_at = $5
		WHERE id = $1 AND status = $6`
	cmd, err := r.q.Exec(context.Background(), query,
		id, status, approverID, note, decidedAt, entity.PurchaseStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("decide purchase request: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Update persiste los cambios de la etapa de recepción física.
func (r *PurchaseRepo) Update(req *entity.PurchaseRequest) error {
	query := `
		UPDATE purchase_requests
		SET reception_status = $2, received_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, req.ID, req.ReceptionStatus, req.ReceivedAt)
	if err != nil {
		return fmt.Errorf("update purchase request: %w", err)
	}
	return nil
}

// List lista demandas de compra filtradas por etapa financiera.
func (r *PurchaseRepo) List(status string, limit, offset int) ([]*entity.PurchaseRequest, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchase_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseRequest
	for rows.Next() {
		var req entity.PurchaseRequest
		if err := rows.Scan(
			&req.ID, &req.ArticleID, &req.Quantity, &req.EstimatedAmount, &req.Status, &req.ReceptionStatus,
			&req.RequesterID, &req.FinanceApproverID, &req.WarehouseID, &req.DecisionNote,
			&req.CreatedAt, &req.DecidedAt, &req.ReceivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase request: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}
