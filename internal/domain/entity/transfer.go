package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transferencia entre almacenes (transición de una sola vía).
const (
	TransferStatusPending  = "pending"
	TransferStatusReceived = "received"
)

// Transfer representa un movimiento en dos fases entre almacenes: el despacho
// solo registra la intención; la confirmación de recepción es la única
// operación que incrementa el ledger (en el almacén destino).
type Transfer struct {
	ID            string
	ArticleID     string
	SourceID      string
	DestinationID string
	Quantity      decimal.Decimal
	InitiatorID   string
	ReceiverID    string
	Status        string // pending, received
	Notes         string
	CreatedAt     time.Time
	ReceivedAt    *time.Time
}
