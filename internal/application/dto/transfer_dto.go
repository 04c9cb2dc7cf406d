package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransferRequest body para POST /api/transfers. El despacho solo
// registra la intención: el ledger se incrementa al confirmar la recepción.
type CreateTransferRequest struct {
	ArticleID     string          `json:"article_id"`
	SourceID      string          `json:"source_id"`
	DestinationID string          `json:"destination_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Notes         string          `json:"notes,omitempty"`
}

// TransferResponse representación HTTP de una transferencia.
type TransferResponse struct {
	ID            string          `json:"id"`
	ArticleID     string          `json:"article_id"`
	SourceID      string          `json:"source_id"`
	DestinationID string          `json:"destination_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	InitiatorID   string          `json:"initiator_id"`
	ReceiverID    string          `json:"receiver_id,omitempty"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	ReceivedAt    *time.Time      `json:"received_at,omitempty"`
}

// TransferListResponse listado paginado de transferencias.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
