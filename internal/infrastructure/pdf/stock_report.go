// Package pdf genera el reporte imprimible de la lista de inventario.
//
// Layout de la página A4:
//
//	┌──────────────────────────────────────────────┐
//	│  TÍTULO + fecha de generación                 │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: ID | Nombre | Cantidad | Precio | Val │
//	│  ───────────────────────────────────────────  │
//	│  TOTALES: unidades / valor del inventario     │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocklist/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// StockReportGenerator arma el PDF con Maroto v2.
type StockReportGenerator struct {
	title string
	now   func() time.Time
}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator(title string) *StockReportGenerator {
	if title == "" {
		title = "Inventario"
	}
	return &StockReportGenerator{title: title, now: time.Now}
}

// Generate genera el PDF de los artículos en el orden recibido y devuelve sus bytes.
func (g *StockReportGenerator) Generate(_ context.Context, items []entity.StockItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(titleRow(g.title, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(title string, at time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 4,
		})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Nombre", 5, align.Left),
		h("Cantidad", 2, align.Right),
		h("Precio", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

func itemRows(items []entity.StockItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1}))
	}
	for _, it := range items {
		value := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		rows = append(rows, row.New(6).Add(
			cell(strconv.Itoa(it.ID), 1, align.Center),
			cell(it.Name, 5, align.Left),
			cell(strconv.Itoa(it.Quantity), 2, align.Right),
			cell(it.PriceLabel(), 2, align.Right),
			cell(value.StringFixed(2), 2, align.Right),
		))
	}
	return rows
}

func totalsRow(items []entity.StockItem) core.Row {
	units := 0
	total := decimal.Zero
	for _, it := range items {
		units += it.Quantity
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return row.New(8).Add(
		col.New(6).Add(text.New(fmt.Sprintf("%d artículos", len(items)), props.Text{
			Size: 8, Color: colorGray, Top: 2,
		})),
		col.New(2).Add(text.New(strconv.Itoa(units), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2,
		})),
		col.New(4).Add(text.New("Total: "+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		})),
	)
}
