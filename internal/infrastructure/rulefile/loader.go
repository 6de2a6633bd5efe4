// Package rulefile colaborador de registro: carga versiones adicionales de reglas desde YAML.
// La elegibilidad de cada versión se expresa en JSON-logic y viaja con la versión,
// de modo que cambiar quién califica exige publicar una versión nueva.
package rulefile

import (
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/jhoicas/Impuestos-api/internal/domain/tax"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File documento YAML.
type File struct {
	Rules []RuleDoc `yaml:"rules"`
}

// RuleDoc una versión de regla. Components no vacío la convierte en regla compuesta.
type RuleDoc struct {
	ID          string   `yaml:"id"`
	TaxType     string   `yaml:"tax_type"`
	Rate        string   `yaml:"rate"`
	Threshold   string   `yaml:"threshold"`
	Categories  []string `yaml:"categories"`
	ValidFrom   string   `yaml:"valid_from"`
	ValidUntil  string   `yaml:"valid_until"`
	RecordedAt  string   `yaml:"recorded_at"`
	Components  []string `yaml:"components"`
	Eligibility any      `yaml:"eligibility"`
}

// Load lee y valida el archivo completo.
func Load(path string) ([]tax.Calculator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer reglas %s: %w", path, err)
	}
	rules, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// Parse decodifica el YAML y construye cada versión.
func Parse(data []byte) ([]tax.Calculator, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decodificar YAML: %w", err)
	}
	out := make([]tax.Calculator, 0, len(f.Rules))
	for i, doc := range f.Rules {
		rule, err := doc.build()
		if err != nil {
			return nil, fmt.Errorf("regla #%d (%s): %w", i+1, doc.ID, err)
		}
		out = append(out, rule)
	}
	return out, nil
}

func (d RuleDoc) build() (tax.Calculator, error) {
	taxType, err := tax.ParseTaxType(d.TaxType)
	if err != nil {
		return nil, err
	}
	rate, err := parseDecimal("rate", d.Rate)
	if err != nil {
		return nil, err
	}
	threshold, err := parseDecimal("threshold", d.Threshold)
	if err != nil {
		return nil, err
	}
	period, err := d.period()
	if err != nil {
		return nil, err
	}
	spec := tax.RuleSpec{
		ID:        d.ID,
		TaxType:   taxType,
		Rate:      rate,
		Threshold: threshold,
		Period:    period,
	}
	for _, c := range d.Categories {
		spec.Categories = append(spec.Categories, entity.ItemCategory(c))
	}
	if d.Eligibility != nil {
		elig, err := NewEligibility(d.Eligibility)
		if err != nil {
			return nil, err
		}
		spec.Eligibility = elig
	}

	if len(d.Components) == 0 {
		return tax.NewRule(spec)
	}
	components := make([]entity.TaxType, 0, len(d.Components))
	for _, c := range d.Components {
		t, err := tax.ParseTaxType(c)
		if err != nil {
			return nil, err
		}
		components = append(components, t)
	}
	return tax.NewCompositeRule(spec, components...)
}

func (d RuleDoc) period() (bitemporal.Period, error) {
	from, err := bitemporal.ParseDate(d.ValidFrom)
	if err != nil {
		return bitemporal.Period{}, err
	}
	var until *time.Time
	if d.ValidUntil != "" {
		t, err := bitemporal.ParseDate(d.ValidUntil)
		if err != nil {
			return bitemporal.Period{}, err
		}
		until = &t
	}
	recorded, err := parseTimestamp(d.RecordedAt)
	if err != nil {
		return bitemporal.Period{}, err
	}
	return bitemporal.NewPeriod(from, until, recorded)
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %s requerido", domain.ErrInvalidRule, field)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q: %v", domain.ErrInvalidRule, field, s, err)
	}
	return v, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: recorded_at inválido %q", domain.ErrInvalidRule, s)
}
