package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/purchase-requests.
type CreatePurchaseRequest struct {
	ArticleID       string          `json:"article_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	EstimatedAmount decimal.Decimal `json:"estimated_amount"`
	WarehouseID     string          `json:"warehouse_id"` // almacén receptor
	Notes           string          `json:"notes,omitempty"`
}

// DecidePurchaseRequest body para approve/reject de la etapa financiera.
type DecidePurchaseRequest struct {
	Note string `json:"note,omitempty"`
}

// PurchaseResponse representación HTTP de una demanda de compra.
type PurchaseResponse struct {
	ID                string          `json:"id"`
	ArticleID         string          `json:"article_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	EstimatedAmount   decimal.Decimal `json:"estimated_amount"`
	Status            string          `json:"status"`
	ReceptionStatus   string          `json:"reception_status"`
	RequesterID       string          `json:"requester_id"`
	FinanceApproverID string          `json:"finance_approver_id,omitempty"`
	WarehouseID       string          `json:"warehouse_id"`
	DecisionNote      string          `json:"decision_note,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	DecidedAt         *time.Time      `json:"decided_at,omitempty"`
	ReceivedAt        *time.Time      `json:"received_at,omitempty"`
}

// PurchaseListResponse listado paginado de demandas de compra.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
