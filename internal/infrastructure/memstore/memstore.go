package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/stocklist/internal/domain/repository"
)

var _ repository.BlobStore = (*Store)(nil)

// Store BlobStore en memoria (tests y STORAGE_DRIVER=memory).
type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte
	// PutErr, si no es nil, se devuelve en cada Put (simula almacenamiento lleno).
	PutErr error
}

// New construye un store vacío.
func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Get devuelve una copia del blob o nil.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), b...), nil
}

// Put sobreescribe el blob.
func (s *Store) Put(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}
