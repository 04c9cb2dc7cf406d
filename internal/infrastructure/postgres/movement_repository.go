package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, article_id, type, quantity, source_id, destination_id,
	actor_id, recipient_id, recipient_type, status, rejection_reason, notes, created_at`

const insertMovement = `
	INSERT INTO movements (id, article_id, type, quantity, source_id, destination_id,
		actor_id, recipient_id, recipient_type, status, rejection_reason, notes, created_at)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13)`

// CreateIfAbsent inserta el movimiento si su ID aún no existe y reporta si la
// fila fue insertada. ON CONFLICT DO NOTHING hace el insert idempotente frente
// a reintentos del mismo ID de cliente.
func (r *MovementRepo) CreateIfAbsent(m *entity.Movement) (bool, error) {
	query := insertMovement + ` ON CONFLICT (id) DO NOTHING`
	cmd, err := r.q.Exec(context.Background(), query,
		m.ID, m.ArticleID, m.Type, m.Quantity, m.SourceID, m.DestinationID,
		m.ActorID, m.RecipientID, m.RecipientType, m.Status, m.RejectionReason, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert movement: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Create inserta el movimiento; falla con ErrDuplicate si el ID ya existe.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), insertMovement,
		m.ID, m.ArticleID, m.Type, m.Quantity, m.SourceID, m.DestinationID,
		m.ActorID, m.RecipientID, m.RecipientType, m.Status, m.RejectionReason, m.Notes, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por su ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List lista movimientos filtrados por artículo y/o almacén (origen o destino).
func (r *MovementRepo) List(articleID, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE ($1 = '' OR article_id = $1)
		  AND ($2 = '' OR source_id = $2 OR destination_id = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, articleID, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var source, destination *string
	err := row.Scan(
		&m.ID, &m.ArticleID, &m.Type, &m.Quantity, &source, &destination,
		&m.ActorID, &m.RecipientID, &m.RecipientType, &m.Status, &m.RejectionReason, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if source != nil {
		m.SourceID = *source
	}
	if destination != nil {
		m.DestinationID = *destination
	}
	return &m, nil
}
