package dto

import "github.com/jhoicas/stocklist/internal/domain/entity"

// StockItemResponse salida de un artículo (misma forma que el blob persistido, más el precio formateado).
type StockItemResponse struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	PriceLabel string  `json:"price_label"`
}

// StockListResponse lista completa en orden de inserción.
type StockListResponse struct {
	Items []StockItemResponse `json:"items"`
	Total int                 `json:"total"`
}

// ToStockListResponse convierte la lista del Store.
func ToStockListResponse(items []entity.StockItem) StockListResponse {
	out := make([]StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, StockItemResponse{
			ID:         it.ID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price.InexactFloat64(),
			PriceLabel: it.PriceLabel(),
		})
	}
	return StockListResponse{Items: out, Total: len(out)}
}
