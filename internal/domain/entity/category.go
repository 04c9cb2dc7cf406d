package entity

import "time"

// Tipos de categoría de artículo.
const (
	CategoryKindRaw        = "raw"        // materia prima
	CategoryKindFinished   = "finished"   // producto terminado
	CategoryKindConsumable = "consumable" // consumible
)

// Category clasifica los artículos del catálogo.
type Category struct {
	ID        string
	Code      string
	Name      string
	Kind      string // raw, finished, consumable
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
