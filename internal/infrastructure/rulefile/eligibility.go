package rulefile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/diegoholiveira/jsonlogic"
	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/jhoicas/Impuestos-api/internal/domain/tax"
)

// NewEligibility compila una expresión JSON-logic en un predicado de elegibilidad.
// Variables disponibles: item.category, item.value, item.value_decimal, item.taxpayer_id,
// taxpayer.person_kind, taxpayer.residency, taxpayer.regime, taxpayer.document_type.
// item.value es float64 (JSON-logic compara números como float): los umbrales numéricos son
// aproximados. item.value_decimal es el texto exacto del valor, para comparaciones de igualdad.
// Un error de evaluación o un resultado no booleano cuentan como "no elegible".
func NewEligibility(expr any) (tax.Eligibility, error) {
	raw, err := json.Marshal(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: eligibility no serializable: %v", domain.ErrInvalidRule, err)
	}
	if _, ok := expr.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: eligibility debe ser un objeto JSON-logic: %s", domain.ErrInvalidRule, raw)
	}
	probe, _ := json.Marshal(eligibilityData(entity.OrderItem{}, &entity.TaxpayerClassification{}))
	if _, err := apply(raw, probe); err != nil {
		return nil, fmt.Errorf("%w: eligibility %s: %v", domain.ErrInvalidRule, raw, err)
	}
	return func(item entity.OrderItem, c *entity.TaxpayerClassification) bool {
		data, err := json.Marshal(eligibilityData(item, c))
		if err != nil {
			return false
		}
		result, err := apply(raw, data)
		if err != nil {
			return false
		}
		b, ok := result.(bool)
		return ok && b
	}, nil
}

// apply evalúa la expresión; un panic del evaluador se reporta como error.
func apply(rule, data []byte) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluación JSON-logic: %v", r)
		}
	}()
	var out bytes.Buffer
	if err := jsonlogic.Apply(bytes.NewReader(rule), bytes.NewReader(data), &out); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func eligibilityData(item entity.OrderItem, c *entity.TaxpayerClassification) map[string]any {
	value, _ := item.Value.Float64()
	data := map[string]any{
		"item": map[string]any{
			"category":      string(item.Category),
			"value":         value,
			"value_decimal": item.Value.String(),
			"taxpayer_id":   item.TaxpayerID,
		},
	}
	if c != nil {
		taxpayer := map[string]any{
			"person_kind": string(c.PersonKind),
			"residency":   string(c.Residency),
			"regime":      string(c.Regime),
		}
		if c.Document != nil {
			taxpayer["document_type"] = string(c.Document.Kind())
		}
		data["taxpayer"] = taxpayer
	}
	return data
}
