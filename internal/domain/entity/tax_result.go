package entity

import "github.com/shopspring/decimal"

// TaxType etiqueta de impuesto (enumeración cerrada).
type TaxType string

const (
	TaxISS    TaxType = "ISS" // impuesto sobre servicios
	TaxPIS    TaxType = "PIS"
	TaxCOFINS TaxType = "COFINS"
	TaxCSLL   TaxType = "CSLL" // contribución social
	TaxPCC    TaxType = "PCC"  // PIS + COFINS + CSLL retenidos en conjunto
)

// TaxTypes todos los tipos de impuesto en orden de declaración.
func TaxTypes() []TaxType {
	return []TaxType{TaxISS, TaxPIS, TaxCOFINS, TaxCSLL, TaxPCC}
}

// ItemTax impuesto cobrado sobre un ítem.
type ItemTax struct {
	TaxType TaxType
	Amount  decimal.Decimal
}

// ItemTaxResult impuestos cobrados de un ítem, en orden de TaxTypes.
type ItemTaxResult struct {
	Item  OrderItem
	Taxes []ItemTax
}

// Find devuelve el impuesto del tipo indicado, si fue cobrado.
func (r ItemTaxResult) Find(t TaxType) (ItemTax, bool) {
	for _, tax := range r.Taxes {
		if tax.TaxType == t {
			return tax, true
		}
	}
	return ItemTax{}, false
}

// OrderTaxResult resultado del pedido, en el mismo orden de sus ítems.
type OrderTaxResult struct {
	OrderID     string
	ItemResults []ItemTaxResult
}
