package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCountRequest body para POST /api/inventory-counts.
type CreateCountRequest struct {
	WarehouseID string `json:"warehouse_id"`
	Notes       string `json:"notes,omitempty"`
}

// AddCountLineRequest body para POST /api/inventory-counts/:id/lines.
// Solo se acepta la cantidad contada; la cantidad registrada y la varianza
// las calcula el motor.
type AddCountLineRequest struct {
	ArticleID       string          `json:"article_id"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
}

// RejectCountRequest body para POST /api/inventory-counts/:id/reject.
type RejectCountRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CountLineResponse línea de un inventario físico.
type CountLineResponse struct {
	ID               string          `json:"id"`
	ArticleID        string          `json:"article_id"`
	CountedQuantity  decimal.Decimal `json:"counted_quantity"`
	RecordedQuantity decimal.Decimal `json:"recorded_quantity"`
	Variance         decimal.Decimal `json:"variance"`
}

// CountResponse representación HTTP de un inventario físico.
type CountResponse struct {
	ID            string              `json:"id"`
	WarehouseID   string              `json:"warehouse_id"`
	ResponsibleID string              `json:"responsible_id"`
	Status        string              `json:"status"`
	ValidatorID   string              `json:"validator_id,omitempty"`
	Reason        string              `json:"reason,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Lines         []CountLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	ValidatedAt   *time.Time          `json:"validated_at,omitempty"`
}

// CountListResponse listado paginado de inventarios.
type CountListResponse struct {
	Items []CountResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
