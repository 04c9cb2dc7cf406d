package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /api/movements. El cliente puede
// enviar un ID propio (UUID) para que un reintento del mismo movimiento no
// aplique la cantidad dos veces.
type CreateMovementRequest struct {
	ID            string          `json:"id,omitempty"`
	ArticleID     string          `json:"article_id"`
	Type          string          `json:"type"` // receipt, issue, return, transfer, count
	Quantity      decimal.Decimal `json:"quantity"`
	SourceID      string          `json:"source_id,omitempty"`
	DestinationID string          `json:"destination_id,omitempty"`
	RecipientID   string          `json:"recipient_id,omitempty"`
	RecipientType string          `json:"recipient_type,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// MovementResponse representación HTTP de un movimiento.
type MovementResponse struct {
	ID              string          `json:"id"`
	ArticleID       string          `json:"article_id"`
	Type            string          `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	SourceID        string          `json:"source_id,omitempty"`
	DestinationID   string          `json:"destination_id,omitempty"`
	ActorID         string          `json:"actor_id"`
	RecipientID     string          `json:"recipient_id,omitempty"`
	RecipientType   string          `json:"recipient_type,omitempty"`
	Status          string          `json:"status"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
