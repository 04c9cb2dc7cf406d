package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article representa un artículo del catálogo (referencia de almacén).
// Code es único e inmutable una vez creado el artículo.
type Article struct {
	ID            string
	Code          string
	Name          string
	Description   string
	UnitMeasure   string
	EstimatedCost decimal.Decimal // costo unitario estimado (para demandas de compra)
	CategoryID    string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
