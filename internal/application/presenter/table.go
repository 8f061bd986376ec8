package presenter

import (
	"strconv"
)

// Row una fila de la tabla con sus controles prellenados.
type Row struct {
	ID            int
	Name          string
	Quantity      int
	Price         string // dos decimales
	QuantityInput string
	PriceInput    string
	DeletePrompt  string
}

// Table vista completa de la lista.
type Table struct {
	Rows []Row
}

// Render reconstruye la tabla desde Store.List(); sin estado propio, dos llamadas seguidas dan lo mismo.
func (p *Presenter) Render() Table {
	items := p.store.List()
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		price := it.PriceLabel()
		rows = append(rows, Row{
			ID:            it.ID,
			Name:          it.Name,
			Quantity:      it.Quantity,
			Price:         price,
			QuantityInput: strconv.Itoa(it.Quantity),
			PriceInput:    price,
			DeletePrompt:  DeletePrompt(it.Name),
		})
	}
	return Table{Rows: rows}
}
