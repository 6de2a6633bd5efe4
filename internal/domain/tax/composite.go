package tax

import (
	"fmt"

	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CompositeRule regla cuyo monto es la suma de otras reglas versionadas de forma independiente.
// Los componentes se resuelven en la misma coordenada del pedido, nunca "la versión actual".
type CompositeRule struct {
	*Rule
	components []entity.TaxType
}

var _ Calculator = (*CompositeRule)(nil)

// NewCompositeRule construye la regla. Un componente no puede ser el propio tipo de la regla.
func NewCompositeRule(spec RuleSpec, components ...entity.TaxType) (*CompositeRule, error) {
	base, err := NewRule(spec)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("%w: regla compuesta %s sin componentes", domain.ErrInvalidRule, spec.ID)
	}
	for _, t := range components {
		if _, err := ParseTaxType(string(t)); err != nil {
			return nil, fmt.Errorf("regla %s: %w", spec.ID, err)
		}
		if t == spec.TaxType {
			return nil, fmt.Errorf("%w: regla compuesta %s se referencia a sí misma", domain.ErrInvalidRule, spec.ID)
		}
	}
	out := make([]entity.TaxType, len(components))
	copy(out, components)
	return &CompositeRule{Rule: base, components: out}, nil
}

// Components tipos de impuesto agregados.
func (r *CompositeRule) Components() []entity.TaxType {
	out := make([]entity.TaxType, len(r.components))
	copy(out, r.components)
	return out
}

// Evaluate suma solo los componentes Applicable; los que están bajo su propio mínimo,
// no aplican o no tienen versión vigente aportan cero. El mínimo propio se evalúa una sola vez.
func (r *CompositeRule) Evaluate(item entity.OrderItem, c *entity.TaxpayerClassification, at bitemporal.Coordinate, rules Resolver) Result {
	if !r.IsApplicable(item, c) {
		return r.notApplicable(item)
	}
	sum := decimal.Zero
	for _, t := range r.components {
		if rules == nil {
			break
		}
		component, ok := rules.Resolve(t, at)
		if !ok {
			continue
		}
		if res, ok := component.Evaluate(item, c, at, rules).(Applicable); ok {
			sum = sum.Add(res.Amount)
		}
	}
	return applyThreshold(sum, r.threshold)
}
