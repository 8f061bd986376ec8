package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocklist/internal/application/dto"
	"github.com/jhoicas/stocklist/internal/application/stock"
	"github.com/jhoicas/stocklist/internal/domain/entity"
)

// ReportGenerator genera el reporte imprimible de la lista.
type ReportGenerator interface {
	Generate(ctx context.Context, items []entity.StockItem) ([]byte, error)
}

// ItemHandler endpoints de solo lectura sobre la lista.
type ItemHandler struct {
	store  *stock.Store
	report ReportGenerator
}

// NewItemHandler construye el handler.
func NewItemHandler(store *stock.Store, report ReportGenerator) *ItemHandler {
	return &ItemHandler{store: store, report: report}
}

// List godoc
// @Summary      Listar artículos
// @Tags         items
// @Produce      json
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.ToStockListResponse(h.store.List()))
}

// ExportPDF godoc
// @Summary      Reporte PDF del inventario
// @Tags         items
// @Produce      application/pdf
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/items/export.pdf [get]
func (h *ItemHandler) ExportPDF(c *fiber.Ctx) error {
	if h.report == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "reporte no disponible"})
	}
	pdf, err := h.report.Generate(c.UserContext(), h.store.List())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.pdf"`)
	return c.Send(pdf)
}
