package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("artículo no encontrado")
	ErrValidation    = errors.New("entrada inválida")
	ErrDuplicateName = errors.New("ya existe un artículo con ese nombre")
	// ErrPersistence: la mutación quedó en memoria pero no se pudo escribir el blob.
	ErrPersistence = errors.New("no se pudo guardar el inventario")
)
