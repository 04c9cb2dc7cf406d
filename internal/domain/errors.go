package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidAmount      = errors.New("cantidad inválida: debe ser mayor que cero")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrServiceUnavailable = errors.New("servicio de autorización no disponible")
	ErrAlreadyDecided     = errors.New("la solicitud ya tiene una decisión terminal")
	ErrAlreadyReceived    = errors.New("la recepción ya fue registrada")
	ErrNotApproved        = errors.New("recepción no permitida: falta aprobación financiera")
)
