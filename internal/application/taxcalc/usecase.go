package taxcalc

import (
	"context"
	"time"

	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/jhoicas/Impuestos-api/internal/domain/repository"
	"github.com/jhoicas/Impuestos-api/internal/domain/tax"
	"github.com/jhoicas/Impuestos-api/pkg/logger"
)

// CalculateOrderTaxesUseCase orquesta el cálculo de impuestos de un pedido completo.
// Es síncrono y sin estado mutable: puede invocarse en paralelo sobre la misma instancia.
type CalculateOrderTaxesUseCase struct {
	taxpayers repository.TaxpayerClassificationRepository
	rules     tax.Resolver
	log       *logger.Logger
	now       func() time.Time
}

// NewCalculateOrderTaxesUseCase construye el caso de uso. log nil descarta los logs.
func NewCalculateOrderTaxesUseCase(
	taxpayers repository.TaxpayerClassificationRepository,
	rules tax.Resolver,
	log *logger.Logger,
) *CalculateOrderTaxesUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CalculateOrderTaxesUseCase{taxpayers: taxpayers, rules: rules, log: log, now: time.Now}
}

// WithClock reemplaza el reloj usado por Calculate (tests).
func (uc *CalculateOrderTaxesUseCase) WithClock(now func() time.Time) *CalculateOrderTaxesUseCase {
	cp := *uc
	cp.now = now
	return &cp
}

// Now instante de cálculo según el reloj del caso de uso.
func (uc *CalculateOrderTaxesUseCase) Now() time.Time { return uc.now() }

// Calculate punto de entrada del servicio: calcula con fecha de cálculo = ahora.
func (uc *CalculateOrderTaxesUseCase) Calculate(ctx context.Context, order *entity.Order) (*entity.OrderTaxResult, error) {
	return uc.ComputeOrder(ctx, order, uc.now())
}

// ComputeOrder calcula los impuestos en la coordenada (order.Date, calculationDate).
// Todo o nada: si algún contribuyente no tiene clasificación vigente, falla el pedido completo.
func (uc *CalculateOrderTaxesUseCase) ComputeOrder(ctx context.Context, order *entity.Order, calculationDate time.Time) (*entity.OrderTaxResult, error) {
	if order == nil || order.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	at := bitemporal.At(order.Date, calculationDate)

	classifications := uc.taxpayers.ResolveMany(order.TaxpayerIDs(), at)

	results := make([]entity.ItemTaxResult, 0, len(order.Items))
	for _, item := range order.Items {
		c, ok := classifications[item.TaxpayerID]
		if !ok {
			uc.log.Warn().
				Str("order_id", order.ID).
				Str("taxpayer_id", item.TaxpayerID).
				Time("valid_at", at.ValidAt).
				Time("known_at", at.KnownAt).
				Msg("clasificación fiscal no encontrada")
			return nil, &domain.ClassificationNotFoundError{TaxpayerID: item.TaxpayerID, ValidAt: at.ValidAt, KnownAt: at.KnownAt}
		}
		results = append(results, uc.computeItem(order.ID, item, c, at))
	}

	uc.log.Debug().Str("order_id", order.ID).Int("items", len(results)).Msg("impuestos calculados")
	return &entity.OrderTaxResult{OrderID: order.ID, ItemResults: results}, nil
}

// computeItem evalúa todos los tipos de la enumeración, no solo los declarados por alguna regla.
// Un tipo sin versión vigente se trata como no aplicable.
func (uc *CalculateOrderTaxesUseCase) computeItem(orderID string, item entity.OrderItem, c *entity.TaxpayerClassification, at bitemporal.Coordinate) entity.ItemTaxResult {
	taxes := make([]entity.ItemTax, 0)
	for _, t := range entity.TaxTypes() {
		rule, ok := uc.rules.Resolve(t, at)
		if !ok {
			continue
		}
		res := rule.Evaluate(item, c, at, uc.rules)
		uc.log.Debug().
			Str("order_id", orderID).
			Str("tax_type", string(t)).
			Str("rule_id", rule.ID()).
			Str("result", string(res.Kind())).
			Msg("regla evaluada")
		if applicable, ok := res.(tax.Applicable); ok {
			taxes = append(taxes, entity.ItemTax{TaxType: t, Amount: applicable.Amount})
		}
	}
	return entity.ItemTaxResult{Item: item, Taxes: taxes}
}
