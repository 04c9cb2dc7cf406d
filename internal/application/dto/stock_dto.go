package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse fila de stock (solo lectura vía API: la cantidad se muta
// únicamente a través de movimientos y workflows).
type StockResponse struct {
	ArticleID      string          `json:"article_id"`
	WarehouseID    string          `json:"warehouse_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// StockListResponse listado filtrado de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
