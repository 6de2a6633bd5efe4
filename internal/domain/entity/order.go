package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemCategory categoría (slug) del ítem vendido.
type ItemCategory string

// CategoryXPTO única categoría del catálogo incorporado.
const CategoryXPTO ItemCategory = "XPTO"

// Order pedido a tributar. Date es la coordenada de tiempo válido del cálculo.
type Order struct {
	ID    string
	Date  time.Time
	Items []OrderItem
}

// OrderItem línea del pedido.
type OrderItem struct {
	Category   ItemCategory
	Value      decimal.Decimal
	TaxpayerID string
}

// TaxpayerIDs contribuyentes distintos referenciados por el pedido, en orden de aparición.
func (o *Order) TaxpayerIDs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	ids := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.TaxpayerID]; ok {
			continue
		}
		seen[it.TaxpayerID] = struct{}{}
		ids = append(ids, it.TaxpayerID)
	}
	return ids
}
