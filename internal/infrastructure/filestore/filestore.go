// Package filestore implementa el almacenamiento clave-valor local sobre archivos:
// un archivo <clave>.json por clave dentro del directorio de datos.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jhoicas/stocklist/internal/domain/repository"
)

var _ repository.BlobStore = (*Store)(nil)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Store guarda cada clave en su propio archivo.
type Store struct {
	dir string
}

// New crea el store en dir, creando el directorio si hace falta.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("filestore: directorio vacío")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: crear %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) (string, error) {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("filestore: clave inválida %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get lee el blob; devuelve nil si el archivo no existe.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("filestore: leer %s: %w", key, err)
	}
	return data, nil
}

// Put escribe el blob de forma atómica (archivo temporal + rename).
func (s *Store) Put(_ context.Context, key string, blob []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: temporal: %w", err)
	}
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("filestore: escribir %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("filestore: cerrar %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("filestore: renombrar %s: %w", key, err)
	}
	return nil
}
