package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad disponible de un artículo en un almacén.
// Única por (ArticleID, WarehouseID); Quantity nunca es negativa y solo se
// modifica a través del servicio de dominio ledger.
type Stock struct {
	ID             string
	ArticleID      string
	WarehouseID    string
	Quantity       decimal.Decimal
	AlertThreshold decimal.Decimal // umbral de alerta de stock bajo
	ExpiryDate     *time.Time
	UpdatedAt      time.Time
}

// BelowThreshold indica si la cantidad cayó por debajo del umbral de alerta.
func (s *Stock) BelowThreshold() bool {
	return s.Quantity.LessThan(s.AlertThreshold)
}
