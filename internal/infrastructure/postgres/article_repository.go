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

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación de ArticleRepository sobre PostgreSQL.
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador del catálogo de artículos.
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

const articleColumns = `id, code, name, description, unit_measure, estimated_cost, category_id,
	is_active, created_at, updated_at`

// Create inserta un artículo; ErrDuplicate si el código ya existe.
func (r *ArticleRepo) Create(a *entity.Article) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO articles (id, code, name, description, unit_measure, estimated_cost,
			category_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Code, a.Name, a.Description, a.UnitMeasure, a.EstimatedCost, a.CategoryID, a.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por su ID; nil si no existe.
func (r *ArticleRepo) GetByID(id string) (*entity.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByCode obtiene un artículo por su código único; nil si no existe.
func (r *ArticleRepo) GetByCode(code string) (*entity.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles WHERE code = $1`
	return r.scanOne(query, code)
}

func (r *ArticleRepo) scanOne(query, key string) (*entity.Article, error) {
	var a entity.Article
	err := r.q.QueryRow(context.Background(), query, key).Scan(
		&a.ID, &a.Code, &a.Name, &a.Description, &a.UnitMeasure, &a.EstimatedCost, &a.CategoryID,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &a, nil
}

// Update persiste los cambios del artículo. El code no se toca: es inmutable.
func (r *ArticleRepo) Update(a *entity.Article) error {
	query := `
		UPDATE articles
		SET name = $2, description = $3, unit_measure = $4, estimated_cost = $5,
		    category_id = $6, is_active = $7, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Name, a.Description, a.UnitMeasure, a.EstimatedCost, a.CategoryID, a.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// List lista artículos filtrados por categoría y/o texto en código o nombre.
func (r *ArticleRepo) List(categoryID, search string, limit, offset int) ([]*entity.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE ($1 = '' OR category_id = $1)
		  AND ($2 = '' OR code ILIKE '%' || $2 || '%' OR name ILIKE '%' || $2 || '%')
		ORDER BY code LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, categoryID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Article
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(
			&a.ID, &a.Code, &a.Name, &a.Description, &a.UnitMeasure, &a.EstimatedCost, &a.CategoryID,
			&a.IsActive, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete desactiva el artículo (soft delete): la historia de movimientos lo
// sigue referenciando.
func (r *ArticleRepo) Delete(id string) error {
	query := `UPDATE articles SET is_active = false, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
