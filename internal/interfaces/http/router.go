package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocklist/internal/application/presenter"
	"github.com/jhoicas/stocklist/internal/application/stock"
	"github.com/jhoicas/stocklist/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Presenter *presenter.Presenter
	Store     *stock.Store
	Report    ReportGenerator
	Log       *logger.Logger
	Title     string
	NotifyTTL time.Duration
}

// Router registra la página y la API de lectura.
func Router(app *fiber.App, deps RouterDeps) error {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app.Use(RequestLogger(deps.Log))

	pageHandler, err := NewPageHandler(deps.Presenter, deps.Title, deps.NotifyTTL)
	if err != nil {
		return err
	}
	app.Get("/", pageHandler.Show)

	items := app.Group("/items")
	items.Post("/", pageHandler.Add)
	items.Post("/:id/quantity", pageHandler.UpdateQuantity)
	items.Post("/:id/price", pageHandler.UpdatePrice)
	items.Post("/:id/delete", pageHandler.Delete)

	api := app.Group("/api")
	itemHandler := NewItemHandler(deps.Store, deps.Report)
	api.Get("/items", itemHandler.List)
	api.Get("/items/export.pdf", itemHandler.ExportPDF)
	return nil
}
