package entity

import "time"

// Warehouse representa un almacén físico (magasin).
// UnitID es una referencia externa opaca a la unidad organizativa propietaria;
// la unidad vive en otro servicio y nunca se resuelve con un join local.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	UnitID    string // id externo de la unidad propietaria
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
