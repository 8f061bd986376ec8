package stock

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocklist/internal/domain/entity"
)

// record es la forma persistida de un artículo: {"id","name","quantity","price"}.
// price se escribe como número JSON (no como string, que es el default de decimal).
type record struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
}

func encodeItems(items []entity.StockItem) ([]byte, error) {
	out := make([]record, 0, len(items))
	for _, it := range items {
		out = append(out, record{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    json.Number(it.Price.String()),
		})
	}
	return json.Marshal(out)
}

func decodeItems(blob []byte) ([]entity.StockItem, error) {
	var recs []record
	if err := json.Unmarshal(blob, &recs); err != nil {
		return nil, fmt.Errorf("decodificar inventario: %w", err)
	}
	items := make([]entity.StockItem, 0, len(recs))
	for _, r := range recs {
		price := decimal.Zero
		if r.Price != "" {
			p, err := decimal.NewFromString(r.Price.String())
			if err != nil {
				return nil, fmt.Errorf("precio de %d: %w", r.ID, err)
			}
			price = p
		}
		items = append(items, entity.StockItem{
			ID:       r.ID,
			Name:     r.Name,
			Quantity: r.Quantity,
			Price:    price,
		})
	}
	return items, nil
}
