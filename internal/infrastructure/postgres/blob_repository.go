package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stocklist/internal/domain/repository"
)

var _ repository.BlobStore = (*BlobRepo)(nil)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS kv_blobs (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// BlobRepo implementación del puerto BlobStore sobre PostgreSQL: una fila por clave.
type BlobRepo struct {
	q Querier
}

// NewBlobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBlobRepository(q Querier) *BlobRepo {
	return &BlobRepo{q: q}
}

// EnsureSchema crea la tabla kv_blobs si no existe.
func (r *BlobRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear kv_blobs: %w", err)
	}
	return nil
}

// Get devuelve el blob de la clave, o nil si no existe.
func (r *BlobRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.q.QueryRow(ctx, `SELECT value::text FROM kv_blobs WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get blob: %w", err)
	}
	return []byte(value), nil
}

// Put sobreescribe el blob completo de la clave (upsert).
func (r *BlobRepo) Put(ctx context.Context, key string, blob []byte) error {
	query := `
		INSERT INTO kv_blobs (key, value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, key, string(blob)); err != nil {
		return fmt.Errorf("put blob: %w", err)
	}
	return nil
}
