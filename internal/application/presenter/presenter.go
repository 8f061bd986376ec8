package presenter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocklist/internal/application/notify"
	"github.com/jhoicas/stocklist/internal/application/stock"
	"github.com/jhoicas/stocklist/internal/domain"
	"github.com/jhoicas/stocklist/internal/domain/entity"
	"github.com/jhoicas/stocklist/pkg/logger"
)

// Mensajes mostrados en el canal de avisos.
const (
	MsgInvalidForm     = "Completa todos los campos correctamente."
	MsgDuplicateName   = "Ya existe un artículo con ese nombre."
	MsgAdded           = "Artículo agregado correctamente."
	MsgInvalidQuantity = "Ingresa una cantidad válida."
	MsgInvalidPrice    = "Ingresa un precio válido."
	MsgUpdated         = "Artículo actualizado correctamente."
	MsgUpdateNotFound  = "No se encontró el artículo para actualizar."
	MsgDeleted         = "Artículo eliminado correctamente."
	MsgDeleteNotFound  = "No se encontró el artículo para eliminar."
	MsgNotSaved        = "El cambio se aplicó pero no se pudo guardar."
)

// Confirmer pide confirmación explícita al usuario.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapta una función a Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm implementa Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Form valores crudos del formulario de alta.
type Form struct {
	Name     string
	Quantity string
	Price    string
}

// Page todo lo necesario para pintar la pantalla.
type Page struct {
	Form         Form
	Table        Table
	Notification *notify.Notification
}

// Presenter traduce los gestos del usuario en llamadas al Store y pinta su estado.
// Cada gesto se ejecuta completo (validar, mutar, persistir, pintar, avisar) antes del siguiente.
type Presenter struct {
	mu     sync.Mutex
	store  *stock.Store
	banner *notify.Banner
	log    *logger.Logger
	form   Form
	table  Table
}

// New construye el Presenter y pinta la tabla inicial.
func New(store *stock.Store, banner *notify.Banner, log *logger.Logger) *Presenter {
	if log == nil {
		log = logger.Nop()
	}
	p := &Presenter{store: store, banner: banner, log: log}
	p.table = p.Render()
	return p
}

// Page devuelve la última tabla pintada, el formulario y el aviso vigente.
func (p *Presenter) Page() Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	page := Page{Form: p.form, Table: p.table}
	if n, ok := p.banner.Current(); ok {
		page.Notification = &n
	}
	return page
}

// SubmitAddForm procesa el formulario de alta. Devuelve true si el artículo se agregó.
func (p *Presenter) SubmitAddForm(ctx context.Context, rawName, rawQuantity, rawPrice string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.form = Form{Name: rawName, Quantity: rawQuantity, Price: rawPrice}
	name := strings.TrimSpace(rawName)
	qty, okQty := parseQuantity(rawQuantity)
	price, okPrice := parsePrice(rawPrice)
	if name == "" || !okQty || !okPrice {
		p.banner.Error(MsgInvalidForm)
		return false
	}

	item, err := p.store.Add(ctx, name, qty, price)
	switch {
	case errors.Is(err, domain.ErrDuplicateName):
		p.banner.Error(MsgDuplicateName)
		return false
	case errors.Is(err, domain.ErrValidation):
		p.banner.Error(MsgInvalidForm)
		return false
	case errors.Is(err, domain.ErrPersistence):
		// el artículo ya está en memoria; reintentar el mismo formulario daría duplicado
		p.form = Form{}
		p.afterMutation()
		p.banner.Error(MsgNotSaved)
		return false
	case err != nil:
		p.log.Error().Err(err).Msg("alta de artículo")
		p.banner.Error(err.Error())
		return false
	}

	p.log.Info().Int("id", item.ID).Str("name", item.Name).Msg("artículo agregado")
	p.form = Form{}
	p.afterMutation()
	p.banner.Success(MsgAdded)
	return true
}

// UpdateQuantity interpreta raw como entero >= 0 y actualiza solo la cantidad.
func (p *Presenter) UpdateQuantity(ctx context.Context, id int, raw string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	qty, ok := parseQuantity(raw)
	if !ok {
		p.banner.Error(MsgInvalidQuantity)
		return false
	}
	_, err := p.store.Update(ctx, id, entity.Some(qty), entity.None[decimal.Decimal]())
	return p.finishUpdate(id, err)
}

// UpdatePrice interpreta raw como número >= 0 y actualiza solo el precio.
func (p *Presenter) UpdatePrice(ctx context.Context, id int, raw string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	price, ok := parsePrice(raw)
	if !ok {
		p.banner.Error(MsgInvalidPrice)
		return false
	}
	_, err := p.store.Update(ctx, id, entity.None[int](), entity.Some(price))
	return p.finishUpdate(id, err)
}

func (p *Presenter) finishUpdate(id int, err error) bool {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		p.banner.Error(MsgUpdateNotFound)
		return false
	case errors.Is(err, domain.ErrPersistence):
		p.afterMutation()
		p.banner.Error(MsgNotSaved)
		return false
	case err != nil:
		p.banner.Error(err.Error())
		return false
	}
	p.log.Info().Int("id", id).Msg("artículo actualizado")
	p.afterMutation()
	p.banner.Success(MsgUpdated)
	return true
}

// Delete pide confirmación nombrando el artículo; si se rechaza no llama al Store.
func (p *Presenter) Delete(ctx context.Context, id int, confirm Confirmer) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	prompt := DeletePrompt(fmt.Sprintf("#%d", id))
	if item, ok := p.store.Get(id); ok {
		prompt = DeletePrompt(item.Name)
	}
	if confirm == nil || !confirm.Confirm(prompt) {
		return false
	}

	err := p.store.Delete(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		p.banner.Error(MsgDeleteNotFound)
		return false
	case errors.Is(err, domain.ErrPersistence):
		p.afterMutation()
		p.banner.Error(MsgNotSaved)
		return false
	case err != nil:
		p.banner.Error(err.Error())
		return false
	}
	p.log.Info().Int("id", id).Msg("artículo eliminado")
	p.afterMutation()
	p.banner.Success(MsgDeleted)
	return true
}

// afterMutation: toda mutación exitosa repinta la tabla completa.
func (p *Presenter) afterMutation() {
	p.table = p.Render()
}

// DeletePrompt texto de confirmación para borrar un artículo.
func DeletePrompt(name string) string {
	return fmt.Sprintf("¿Seguro que deseas eliminar %s?", name)
}

func parseQuantity(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parsePrice(raw string) (decimal.Decimal, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
