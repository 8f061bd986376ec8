package notify

import (
	"sync"
	"time"
)

// DefaultTTL tiempo que un aviso permanece visible.
const DefaultTTL = 3 * time.Second

// Kind variante del aviso.
type Kind string

// Variantes del aviso; el valor se usa como clase CSS del banner.
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification aviso transitorio mostrado al usuario.
type Notification struct {
	Kind    Kind
	Text    string
	ShownAt time.Time
}

// Banner canal de avisos: a lo sumo uno visible; uno nuevo reemplaza al anterior
// y se oculta solo al cumplir el TTL.
type Banner struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	current *Notification
}

// Option configura el Banner.
type Option func(*Banner)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(b *Banner) { b.now = now }
}

// NewBanner construye el canal. ttl <= 0 usa DefaultTTL.
func NewBanner(ttl time.Duration, opts ...Option) *Banner {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	b := &Banner{ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Success muestra un aviso de éxito.
func (b *Banner) Success(text string) { b.show(KindSuccess, text) }

// Error muestra un aviso de error.
func (b *Banner) Error(text string) { b.show(KindError, text) }

func (b *Banner) show(kind Kind, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = &Notification{Kind: kind, Text: text, ShownAt: b.now()}
}

// Current devuelve el aviso visible, si no ha expirado.
func (b *Banner) Current() (Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Notification{}, false
	}
	if b.now().Sub(b.current.ShownAt) >= b.ttl {
		b.current = nil
		return Notification{}, false
	}
	return *b.current, true
}

// TTL duración de visibilidad configurada.
func (b *Banner) TTL() time.Duration { return b.ttl }
