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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de transferencias.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, article_id, source_id, destination_id, quantity,
	initiator_id, receiver_id, status, notes, created_at, received_at`

// Create inserta una transferencia.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (id, article_id, source_id, destination_id, quantity,
			initiator_id, receiver_id, status, notes, created_at, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.ArticleID, t.SourceID, t.DestinationID, t.Quantity,
		t.InitiatorID, t.ReceiverID, t.Status, t.Notes, t.CreatedAt, t.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene una transferencia por su ID; nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene la transferencia bloqueando la fila (FOR UPDATE),
// de modo que dos confirmaciones concurrentes se serialicen y solo una gane.
func (r *TransferRepo) GetByIDForUpdate(id string) (*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE id = $1
		FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *TransferRepo) scanOne(query, id string) (*entity.Transfer, error) {
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ArticleID, &t.SourceID, &t.DestinationID, &t.Quantity,
		&t.InitiatorID, &t.ReceiverID, &t.Status, &t.Notes, &t.CreatedAt, &t.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}

// Update persiste los cambios de estado de la transferencia.
func (r *TransferRepo) Update(t *entity.Transfer) error {
	query := `
		UPDATE transfers
		SET receiver_id = $2, status = $3, notes = $4, received_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.ReceiverID, t.Status, t.Notes, t.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// List lista transferencias donde el almacén participa como origen o destino.
func (r *TransferRepo) List(warehouseID string, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE ($1 = '' OR source_id = $1 OR destination_id = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(
			&t.ID, &t.ArticleID, &t.SourceID, &t.DestinationID, &t.Quantity,
			&t.InitiatorID, &t.ReceiverID, &t.Status, &t.Notes, &t.CreatedAt, &t.ReceivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
