package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la etapa financiera de una demanda de compra.
const (
	PurchaseStatusPending  = "pending"
	PurchaseStatusApproved = "approved"
	PurchaseStatusRejected = "rejected"
)

// Estados de la etapa de recepción física.
const (
	ReceptionStatusPending  = "pending"
	ReceptionStatusReceived = "received"
)

// PurchaseRequest es una adquisición de stock con doble etapa: aprobación
// financiera (externa) y recepción física. El ledger se incrementa exactamente
// una vez, en la recepción, y solo si la etapa financiera fue aprobada.
type PurchaseRequest struct {
	ID                string
	ArticleID         string
	Quantity          decimal.Decimal
	EstimatedAmount   decimal.Decimal
	Status            string // etapa financiera: pending, approved, rejected
	ReceptionStatus   string // etapa física: pending, received
	RequesterID       string
	FinanceApproverID string
	WarehouseID       string // almacén receptor
	DecisionNote      string
	CreatedAt         time.Time
	DecidedAt         *time.Time
	ReceivedAt        *time.Time
}
