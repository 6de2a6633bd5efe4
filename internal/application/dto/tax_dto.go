package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculateTaxesRequest cuerpo de POST /api/taxes/calculate.
// CalculationDate vacío = ahora. OrderID vacío = se genera uno.
type CalculateTaxesRequest struct {
	OrderID         string             `json:"order_id" example:"ped-1"`
	OrderDate       string             `json:"order_date" example:"2025-06-15"`                 // YYYY-MM-DD
	CalculationDate *time.Time         `json:"calculation_date" example:"2025-11-10T12:00:00Z"` // RFC3339
	Items           []OrderItemRequest `json:"items"`
}

// OrderItemRequest línea del pedido.
type OrderItemRequest struct {
	Category   string          `json:"category" example:"XPTO"`
	Value      decimal.Decimal `json:"value" swaggertype:"string" example:"1000.00"`
	TaxpayerID string          `json:"taxpayer_id" example:"actor-2"`
}

// OrderTaxResponse resultado del pedido.
type OrderTaxResponse struct {
	OrderID         string              `json:"order_id"`
	OrderDate       string              `json:"order_date"`
	CalculationDate time.Time           `json:"calculation_date"`
	Items           []ItemTaxResponse   `json:"items"`
	Totals          []TaxAmountResponse `json:"totals"`
}

// ItemTaxResponse impuestos cobrados sobre un ítem.
type ItemTaxResponse struct {
	Category   string              `json:"category"`
	Value      decimal.Decimal     `json:"value" swaggertype:"string"`
	TaxpayerID string              `json:"taxpayer_id"`
	Taxes      []TaxAmountResponse `json:"taxes"`
}

// TaxAmountResponse par (tipo de impuesto, monto).
type TaxAmountResponse struct {
	TaxType string          `json:"tax_type"`
	Amount  decimal.Decimal `json:"amount" swaggertype:"string" example:"70"`
}

// ClassificationResponse clasificación fiscal vigente en la coordenada consultada.
type ClassificationResponse struct {
	TaxpayerID    string  `json:"taxpayer_id"`
	DocumentType  string  `json:"document_type"`
	DocumentValue string  `json:"document_value"`
	PersonKind    string  `json:"person_kind"`
	Residency     string  `json:"residency"`
	Regime        string  `json:"regime"`
	ValidFrom     string  `json:"valid_from"`
	ValidUntil    *string `json:"valid_until"`
	RecordedAt    string  `json:"recorded_at"`
}

// RuleResponse versión de regla vigente en la coordenada consultada.
type RuleResponse struct {
	ID         string          `json:"id"`
	TaxType    string          `json:"tax_type"`
	Rate       decimal.Decimal `json:"rate" swaggertype:"string"`
	Threshold  decimal.Decimal `json:"threshold" swaggertype:"string"`
	Categories []string        `json:"categories"`
	Components []string        `json:"components,omitempty"`
	ValidFrom  string          `json:"valid_from"`
	ValidUntil *string         `json:"valid_until"`
	RecordedAt string          `json:"recorded_at"`
}
