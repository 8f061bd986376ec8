package stock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/stocklist/internal/domain"
	"github.com/jhoicas/stocklist/internal/domain/entity"
	"github.com/jhoicas/stocklist/internal/domain/repository"
	"github.com/jhoicas/stocklist/pkg/logger"
)

// DefaultKey es la clave bajo la que se persiste la lista completa.
const DefaultKey = "stockItems"

// Store es el dueño de la lista de artículos: valida, muta y sincroniza con el blob persistido.
// No conoce nada de la presentación; quien llama decide cuándo volver a renderizar.
type Store struct {
	mu    sync.RWMutex
	blobs repository.BlobStore
	key   string
	log   *logger.Logger
	items []entity.StockItem
	// readErr: el último Load no pudo leer el almacenamiento; persist no escribe
	// para no pisar el inventario guardado con una lista incompleta.
	readErr error
}

// NewStore construye el Store. La lista queda vacía hasta llamar a Load.
func NewStore(blobs repository.BlobStore, key string, log *logger.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{blobs: blobs, key: key, log: log, items: []entity.StockItem{}}
}

// Load lee el blob persistido. Si no existe o no se puede decodificar, arranca con la lista vacía.
// Solo un error del almacenamiento al leer se devuelve al llamador; en ese caso
// las mutaciones no se persisten hasta que un Load posterior lea con éxito.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		s.items = []entity.StockItem{}
		s.readErr = fmt.Errorf("leer %q: %w", s.key, err)
		return s.readErr
	}
	s.readErr = nil
	if blob == nil {
		s.items = []entity.StockItem{}
		return nil
	}
	items, err := decodeItems(blob)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("blob ilegible, se inicia con inventario vacío")
		s.items = []entity.StockItem{}
		return nil
	}
	s.items = items
	s.log.Debug().Int("items", len(items)).Str("key", s.key).Msg("inventario cargado")
	return nil
}

// Add valida y agrega un artículo al final de la lista.
// Errores: domain.ErrValidation, domain.ErrDuplicateName; domain.ErrPersistence si el
// artículo quedó en memoria pero no se pudo guardar.
func (s *Store) Add(ctx context.Context, name string, quantity int, price decimal.Decimal) (entity.StockItem, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return entity.StockItem{}, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrValidation)
	case quantity < 0:
		return entity.StockItem{}, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrValidation)
	case price.IsNegative():
		return entity.StockItem{}, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folded := foldName(name)
	for _, it := range s.items {
		if foldName(it.Name) == folded {
			return entity.StockItem{}, fmt.Errorf("%w: %q", domain.ErrDuplicateName, it.Name)
		}
	}

	item := entity.StockItem{
		ID:       s.nextID(),
		Name:     name,
		Quantity: quantity,
		Price:    price,
	}
	s.items = append(s.items, item)
	return item, s.persist(ctx)
}

// Update modifica cantidad y/o precio del artículo en su misma posición.
// Los valores ya vienen validados por el llamador; un Optional ausente deja el campo igual.
func (s *Store) Update(ctx context.Context, id int, quantity entity.Optional[int], price entity.Optional[decimal.Decimal]) (entity.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return entity.StockItem{}, fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}
	if q, ok := quantity.Get(); ok {
		s.items[idx].Quantity = q
	}
	if p, ok := price.Get(); ok {
		s.items[idx].Price = p
	}
	return s.items[idx], s.persist(ctx)
}

// Delete elimina el artículo conservando el orden relativo del resto.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}
	rest := make([]entity.StockItem, 0, len(s.items)-1)
	rest = append(rest, s.items[:idx]...)
	rest = append(rest, s.items[idx+1:]...)
	s.items = rest
	return s.persist(ctx)
}

// List devuelve una copia de la lista en orden de inserción.
func (s *Store) List() []entity.StockItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.StockItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get busca un artículo por ID.
func (s *Store) Get(id int) (entity.StockItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], true
	}
	return entity.StockItem{}, false
}

func (s *Store) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID: máximo ID existente + 1, o 1 si la lista está vacía.
func (s *Store) nextID() int {
	maxID := 0
	for _, it := range s.items {
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	return maxID + 1
}

// persist serializa la lista completa y sobreescribe la clave. Debe llamarse con mu tomado.
func (s *Store) persist(ctx context.Context) error {
	if s.readErr != nil {
		return fmt.Errorf("%w: inventario sin cargar: %w", domain.ErrPersistence, s.readErr)
	}
	blob, err := encodeItems(s.items)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if err := s.blobs.Put(ctx, s.key, blob); err != nil {
		s.log.Error().Err(err).Str("key", s.key).Msg("no se pudo persistir el inventario")
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// foldName normaliza el nombre para comparar sin distinguir mayúsculas (Unicode).
func foldName(name string) string {
	return cases.Fold().String(name)
}
