package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReplenishmentRequest body para POST /api/replenishment-requests.
type CreateReplenishmentRequest struct {
	WarehouseID       string          `json:"warehouse_id"`
	ArticleID         string          `json:"article_id"`
	QuantityRequested decimal.Decimal `json:"quantity_requested"`
	Priority          string          `json:"priority,omitempty"` // low, normal, high
	Notes             string          `json:"notes,omitempty"`
}

// DecideReplenishmentRequest body para approve/reject. En la aprobación,
// QuantityApproved es opcional: por defecto se aprueba la cantidad solicitada.
type DecideReplenishmentRequest struct {
	QuantityApproved *decimal.Decimal `json:"quantity_approved,omitempty"`
	Note             string           `json:"note,omitempty"`
}

// ReplenishmentResponse representación HTTP de una demanda de
// reaprovisionamiento.
type ReplenishmentResponse struct {
	ID                string           `json:"id"`
	WarehouseID       string           `json:"warehouse_id"`
	ArticleID         string           `json:"article_id"`
	QuantityRequested decimal.Decimal  `json:"quantity_requested"`
	QuantityApproved  *decimal.Decimal `json:"quantity_approved,omitempty"`
	Priority          string           `json:"priority"`
	Status            string           `json:"status"`
	RequesterID       string           `json:"requester_id"`
	ApproverID        string           `json:"approver_id,omitempty"`
	DecisionNote      string           `json:"decision_note,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	DecidedAt         *time.Time       `json:"decided_at,omitempty"`
}

// ReplenishmentListResponse listado paginado de demandas.
type ReplenishmentListResponse struct {
	Items []ReplenishmentResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
