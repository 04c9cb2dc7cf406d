package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticleRequest body para POST /api/articles.
type CreateArticleRequest struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	UnitMeasure   string          `json:"unit_measure"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	CategoryID    string          `json:"category_id"`
}

// UpdateArticleRequest body para PUT /api/articles/:id. Code no es editable.
type UpdateArticleRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	UnitMeasure   *string          `json:"unit_measure,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// ArticleResponse representación HTTP de un artículo.
type ArticleResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	UnitMeasure   string          `json:"unit_measure"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	CategoryID    string          `json:"category_id"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ArticleListResponse listado paginado de artículos.
type ArticleListResponse struct {
	Items []ArticleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Kind string `json:"kind"` // raw, finished, consumable
}

// UpdateCategoryRequest body para PUT /api/categories/:id.
type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	Kind     *string `json:"kind,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// CategoryResponse representación HTTP de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse listado paginado de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
