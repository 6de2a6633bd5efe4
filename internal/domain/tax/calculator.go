// Package tax contiene las reglas de cálculo (calculadoras) versionadas bitemporalmente,
// su registro y el protocolo de evaluación de reglas simples y compuestas.
package tax

import (
	"fmt"

	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Resolver selecciona la versión de regla aplicable para un tipo de impuesto en una coordenada.
// Lo implementa *Registry; las reglas compuestas lo reciben en cada llamada a Evaluate.
type Resolver interface {
	Resolve(taxType entity.TaxType, at bitemporal.Coordinate) (Calculator, bool)
}

// Calculator contrato de una versión de regla de impuesto.
type Calculator interface {
	bitemporal.Versioned
	ID() string
	TaxType() entity.TaxType
	Rate() decimal.Decimal
	Threshold() decimal.Decimal
	Categories() []entity.ItemCategory

	// IsApplicable predicado puro de elegibilidad. Vive dentro de la versión de la regla,
	// por lo que cambiar quién califica exige publicar una nueva versión.
	IsApplicable(item entity.OrderItem, c *entity.TaxpayerClassification) bool

	// Evaluate calcula el resultado en la coordenada (fecha del pedido, fecha de cálculo).
	Evaluate(item entity.OrderItem, c *entity.TaxpayerClassification, at bitemporal.Coordinate, rules Resolver) Result
}

// Eligibility reglas de elegibilidad propias de una versión (régimen, tipo de persona, ...).
// La categoría del ítem se verifica siempre antes de invocarla.
type Eligibility func(item entity.OrderItem, c *entity.TaxpayerClassification) bool

// RuleSpec datos de una versión de regla.
type RuleSpec struct {
	ID          string
	TaxType     entity.TaxType
	Rate        decimal.Decimal
	Threshold   decimal.Decimal
	Categories  []entity.ItemCategory
	Eligibility Eligibility
	Period      bitemporal.Period
}

// Rule regla simple: monto = valor * tasa, suprimido si queda bajo el mínimo.
type Rule struct {
	id          string
	taxType     entity.TaxType
	rate        decimal.Decimal
	threshold   decimal.Decimal
	categories  map[entity.ItemCategory]struct{}
	ordered     []entity.ItemCategory
	eligibility Eligibility
	period      bitemporal.Period
}

var _ Calculator = (*Rule)(nil)

// NewRule valida y construye una regla simple.
func NewRule(spec RuleSpec) (*Rule, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidRule)
	}
	if _, err := ParseTaxType(string(spec.TaxType)); err != nil {
		return nil, fmt.Errorf("regla %s: %w", spec.ID, err)
	}
	if spec.Rate.IsNegative() || spec.Threshold.IsNegative() {
		return nil, fmt.Errorf("%w: regla %s con tasa o mínimo negativo", domain.ErrInvalidRule, spec.ID)
	}
	if err := spec.Period.Validate(); err != nil {
		return nil, fmt.Errorf("regla %s: %w", spec.ID, err)
	}
	r := &Rule{
		id:          spec.ID,
		taxType:     spec.TaxType,
		rate:        spec.Rate,
		threshold:   spec.Threshold,
		categories:  make(map[entity.ItemCategory]struct{}, len(spec.Categories)),
		eligibility: spec.Eligibility,
		period:      spec.Period,
	}
	for _, cat := range spec.Categories {
		if _, dup := r.categories[cat]; dup {
			continue
		}
		r.categories[cat] = struct{}{}
		r.ordered = append(r.ordered, cat)
	}
	return r, nil
}

func (r *Rule) ID() string                    { return r.id }
func (r *Rule) TaxType() entity.TaxType       { return r.taxType }
func (r *Rule) Rate() decimal.Decimal         { return r.rate }
func (r *Rule) Threshold() decimal.Decimal    { return r.threshold }
func (r *Rule) Bitemporal() bitemporal.Period { return r.period }
func (r *Rule) Categories() []entity.ItemCategory {
	out := make([]entity.ItemCategory, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// IsApplicable la categoría del ítem debe estar declarada y la elegibilidad (si existe) cumplirse.
func (r *Rule) IsApplicable(item entity.OrderItem, c *entity.TaxpayerClassification) bool {
	if _, ok := r.categories[item.Category]; !ok {
		return false
	}
	if r.eligibility == nil {
		return true
	}
	return r.eligibility(item, c)
}

// Evaluate algoritmo por defecto de toda regla simple.
func (r *Rule) Evaluate(item entity.OrderItem, c *entity.TaxpayerClassification, _ bitemporal.Coordinate, _ Resolver) Result {
	if !r.IsApplicable(item, c) {
		return r.notApplicable(item)
	}
	return applyThreshold(item.Value.Mul(r.rate), r.threshold)
}

func (r *Rule) notApplicable(item entity.OrderItem) NotApplicable {
	return NotApplicable{Reason: fmt.Sprintf("ítem %s (contribuyente %s) no aplica a %s", item.Category, item.TaxpayerID, r)}
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s#%s %s", r.taxType, r.id, r.period)
}
