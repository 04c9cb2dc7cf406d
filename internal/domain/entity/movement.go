package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeReceipt  = "receipt"  // entrada
	MovementTypeIssue    = "issue"    // sortie
	MovementTypeReturn   = "return"   // devolución
	MovementTypeTransfer = "transfer" // informativo: el workflow de transferencia aplica la cantidad
	MovementTypeCount    = "count"    // informativo: la reconciliación de inventario aplica la cantidad
)

// Estados de un movimiento.
const (
	MovementStatusApplied  = "applied"
	MovementStatusRejected = "rejected"
)

// Movement representa un evento discreto que afecta (o documenta) el ledger.
// El ID puede venir del cliente para que un reintento de red no aplique la
// cantidad dos veces (insert idempotente + mutación en la misma transacción).
type Movement struct {
	ID              string
	ArticleID       string
	Type            string // receipt, issue, return, transfer, count
	Quantity        decimal.Decimal
	SourceID        string // almacén origen (issue)
	DestinationID   string // almacén destino (receipt, return)
	ActorID         string
	RecipientID     string
	RecipientType   string
	Status          string // applied, rejected
	RejectionReason string
	Notes           string
	CreatedAt       time.Time
}

// RequiresSource indica si el tipo de movimiento exige almacén origen.
func (m *Movement) RequiresSource() bool {
	return m.Type == MovementTypeIssue
}

// RequiresDestination indica si el tipo de movimiento exige almacén destino.
func (m *Movement) RequiresDestination() bool {
	return m.Type == MovementTypeReceipt || m.Type == MovementTypeReturn
}
