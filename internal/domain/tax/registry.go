package tax

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
)

// ParseTaxType valida una etiqueta de impuesto contra la enumeración cerrada.
func ParseTaxType(s string) (entity.TaxType, error) {
	for _, t := range entity.TaxTypes() {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownTaxType, s)
}

// Registry todas las versiones de todas las reglas. Se construye una sola vez a partir de una
// lista ya finalizada y no se modifica después; las lecturas concurrentes no requieren locks.
type Registry struct {
	byType map[entity.TaxType][]Calculator
	size   int
}

var _ Resolver = (*Registry)(nil)

// NewRegistry agrupa las versiones por tipo de impuesto conservando el orden de registro.
// Rechaza ids duplicados y ciclos entre reglas compuestas.
func NewRegistry(rules ...Calculator) (*Registry, error) {
	reg := &Registry{byType: make(map[entity.TaxType][]Calculator)}
	ids := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if r == nil {
			return nil, fmt.Errorf("%w: regla nil", domain.ErrInvalidRule)
		}
		if _, dup := ids[r.ID()]; dup {
			return nil, fmt.Errorf("%w: id duplicado %s", domain.ErrInvalidRule, r.ID())
		}
		ids[r.ID()] = struct{}{}
		reg.byType[r.TaxType()] = append(reg.byType[r.TaxType()], r)
		reg.size++
	}
	if err := reg.checkCycles(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Resolve versión vigente en la coordenada con el mayor RecordedAt: la más recientemente conocida
// como en vigor en ValidAt, según lo sabido en KnownAt. ok=false significa "no aplica" (no es error).
func (r *Registry) Resolve(taxType entity.TaxType, at bitemporal.Coordinate) (Calculator, bool) {
	return bitemporal.Latest(r.byType[taxType], at)
}

// Versions copia de las versiones registradas para el tipo, en orden de registro.
func (r *Registry) Versions(taxType entity.TaxType) []Calculator {
	out := make([]Calculator, len(r.byType[taxType]))
	copy(out, r.byType[taxType])
	return out
}

// Len total de versiones registradas.
func (r *Registry) Len() int { return r.size }

func (r *Registry) checkCycles() error {
	edges := make(map[entity.TaxType][]entity.TaxType)
	for t, versions := range r.byType {
		for _, v := range versions {
			if c, ok := v.(interface{ Components() []entity.TaxType }); ok {
				edges[t] = append(edges[t], c.Components()...)
			}
		}
	}
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[entity.TaxType]int)
	var visit func(t entity.TaxType, path []entity.TaxType) error
	visit = func(t entity.TaxType, path []entity.TaxType) error {
		switch state[t] {
		case visiting:
			return fmt.Errorf("%w: ciclo entre reglas compuestas %v", domain.ErrInvalidRule, append(path, t))
		case done:
			return nil
		}
		state[t] = visiting
		for _, next := range edges[t] {
			if err := visit(next, append(path, t)); err != nil {
				return err
			}
		}
		state[t] = done
		return nil
	}
	for _, t := range entity.TaxTypes() {
		if err := visit(t, nil); err != nil {
			return err
		}
	}
	return nil
}
