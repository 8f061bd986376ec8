package entity

import "github.com/shopspring/decimal"

// StockItem representa un artículo de la lista de inventario.
// ID lo asigna el Store; Name es único sin distinguir mayúsculas.
type StockItem struct {
	ID       int
	Name     string
	Quantity int
	Price    decimal.Decimal // precio unitario, se muestra con 2 decimales
}

// PriceLabel devuelve el precio con exactamente dos decimales.
func (i StockItem) PriceLabel() string {
	return i.Price.StringFixed(2)
}
