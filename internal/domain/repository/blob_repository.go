package repository

import "context"

// BlobStore define el puerto de almacenamiento clave-valor local (DIP).
// Cada clave guarda un único blob que se sobreescribe completo en cada Put.
type BlobStore interface {
	// Get devuelve (nil, nil) si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, blob []byte) error
}
