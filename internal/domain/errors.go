package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El motor de conciliación no devuelve errores; estos los usan las capas de aplicación y transporte.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrSourceUnavailable = errors.New("fuente de datos no disponible")
	ErrWriteRejected     = errors.New("el endpoint remoto rechazó el registro")
)
