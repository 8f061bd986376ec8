package http

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocklist/internal/application/dto"
	"github.com/jhoicas/stocklist/internal/application/presenter"
)

//go:embed templates/page.gohtml
var templatesFS embed.FS

// pageView datos del template.
type pageView struct {
	presenter.Page
	Title       string
	RemainingMs int64
}

// PageHandler sirve la página única y recibe los formularios (patrón POST-redirect-GET).
type PageHandler struct {
	p     *presenter.Presenter
	tmpl  *template.Template
	title string
	ttl   time.Duration
	now   func() time.Time
}

// NewPageHandler parsea el template embebido una sola vez.
func NewPageHandler(p *presenter.Presenter, title string, ttl time.Duration) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/page.gohtml")
	if err != nil {
		return nil, err
	}
	return &PageHandler{p: p, tmpl: tmpl, title: title, ttl: ttl, now: time.Now}, nil
}

// Show pinta formulario, tabla y aviso vigente.
// GET /
func (h *PageHandler) Show(c *fiber.Ctx) error {
	view := pageView{Page: h.p.Page(), Title: h.title}
	if n := view.Notification; n != nil {
		view.RemainingMs = (h.ttl - h.now().Sub(n.ShownAt)).Milliseconds()
	}
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, view); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RENDER", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// Add recibe el formulario de alta.
// POST /items
func (h *PageHandler) Add(c *fiber.Ctx) error {
	h.p.SubmitAddForm(c.UserContext(), c.FormValue("name"), c.FormValue("quantity"), c.FormValue("price"))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// UpdateQuantity POST /items/:id/quantity
func (h *PageHandler) UpdateQuantity(c *fiber.Ctx) error {
	h.p.UpdateQuantity(c.UserContext(), itemID(c), c.FormValue("quantity"))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// UpdatePrice POST /items/:id/price
func (h *PageHandler) UpdatePrice(c *fiber.Ctx) error {
	h.p.UpdatePrice(c.UserContext(), itemID(c), c.FormValue("price"))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Delete solo borra si el diálogo de confirmación marcó confirm=yes.
// POST /items/:id/delete
func (h *PageHandler) Delete(c *fiber.Ctx) error {
	confirmed := c.FormValue("confirm") == "yes"
	h.p.Delete(c.UserContext(), itemID(c), presenter.ConfirmFunc(func(string) bool { return confirmed }))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// itemID devuelve 0 (nunca asignado) si el parámetro no es un entero; el Store responde no encontrado.
func itemID(c *fiber.Ctx) int {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0
	}
	return id
}
