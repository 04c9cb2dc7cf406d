package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una demanda de reaprovisionamiento.
const (
	ReplenishmentStatusPending  = "pending"
	ReplenishmentStatusApproved = "approved"
	ReplenishmentStatusRejected = "rejected"
)

// Prioridades de una demanda de reaprovisionamiento.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// ReplenishmentRequest es la solicitud de un almacén para reponer stock de un
// artículo. La aprobación solo registra la intención y la cantidad aprobada;
// nunca muta el ledger.
type ReplenishmentRequest struct {
	ID                string
	WarehouseID       string
	ArticleID         string
	QuantityRequested decimal.Decimal
	QuantityApproved  *decimal.Decimal // solo se fija al aprobar
	Priority          string           // low, normal, high
	Status            string           // pending, approved, rejected
	RequesterID       string
	ApproverID        string
	DecisionNote      string
	CreatedAt         time.Time
	DecidedAt         *time.Time
}
