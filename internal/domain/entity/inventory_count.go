package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un inventario físico.
const (
	CountStatusInProgress = "in_progress"
	CountStatusValidated  = "validated"
	CountStatusRejected   = "rejected"
)

// InventoryCount es un conteo físico del stock de un almacén. Mientras está
// in_progress las líneas se editan libremente sin efecto en el ledger; la
// validación aplica cada cantidad contada como escritura directa y congela la
// varianza; el rechazo descarta todo efecto.
type InventoryCount struct {
	ID            string
	WarehouseID   string
	ResponsibleID string
	Status        string // in_progress, validated, rejected
	ValidatorID   string
	Reason        string
	Notes         string
	CreatedAt     time.Time
	ValidatedAt   *time.Time
}

// CountLine es una cantidad contada dentro de un inventario. RecordedQuantity
// es la foto del ledger y Variance = contada − registrada; ambas las calcula
// el motor, nunca el usuario.
type CountLine struct {
	ID               string
	CountID          string
	ArticleID        string
	CountedQuantity  decimal.Decimal
	RecordedQuantity decimal.Decimal
	Variance         decimal.Decimal
	UpdatedAt        time.Time
}
