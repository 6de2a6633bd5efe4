package tax

import (
	"fmt"
	"time"

	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Vigencia y registro del catálogo 2025.
var (
	catalog2025From     = bitemporal.Date(2025, time.January, 1)
	catalog2025Recorded = time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
)

// JuridicalSimples persona jurídica en Simples Nacional.
func JuridicalSimples(_ entity.OrderItem, c *entity.TaxpayerClassification) bool {
	return c != nil && c.PersonKind == entity.PersonJuridical && c.Regime == entity.RegimeSimplesNacional
}

// JuridicalNotSimples persona jurídica fuera de Simples Nacional (complemento de JuridicalSimples).
func JuridicalNotSimples(_ entity.OrderItem, c *entity.TaxpayerClassification) bool {
	return c != nil && c.PersonKind == entity.PersonJuridical && c.Regime != entity.RegimeSimplesNacional
}

// BuiltinRules catálogo incorporado, vigente desde 2025-01-01.
// PIS, COFINS y CSLL solo verifican la categoría: la elegibilidad la impone PCC.
func BuiltinRules() ([]Calculator, error) {
	period, err := bitemporal.NewPeriod(catalog2025From, nil, catalog2025Recorded)
	if err != nil {
		return nil, err
	}
	xpto := []entity.ItemCategory{entity.CategoryXPTO}

	iss, err := NewRule(RuleSpec{
		ID: "iss-2025", TaxType: entity.TaxISS,
		Rate: decimal.RequireFromString("0.06"), Threshold: decimal.RequireFromString("1.00"),
		Categories: xpto, Eligibility: JuridicalSimples, Period: period,
	})
	if err != nil {
		return nil, err
	}
	pis, err := NewRule(RuleSpec{
		ID: "pis-2025", TaxType: entity.TaxPIS,
		Rate: decimal.RequireFromString("0.06"), Threshold: decimal.RequireFromString("1.00"),
		Categories: xpto, Period: period,
	})
	if err != nil {
		return nil, err
	}
	cofins, err := NewRule(RuleSpec{
		ID: "cofins-2025", TaxType: entity.TaxCOFINS,
		Rate: decimal.RequireFromString("0.005"), Threshold: decimal.RequireFromString("0.10"),
		Categories: xpto, Period: period,
	})
	if err != nil {
		return nil, err
	}
	csll, err := NewRule(RuleSpec{
		ID: "csll-2025", TaxType: entity.TaxCSLL,
		Rate: decimal.RequireFromString("0.005"), Threshold: decimal.RequireFromString("0.10"),
		Categories: xpto, Period: period,
	})
	if err != nil {
		return nil, err
	}
	pcc, err := NewCompositeRule(RuleSpec{
		ID: "pcc-2025", TaxType: entity.TaxPCC,
		Rate: decimal.RequireFromString("0.005"), Threshold: decimal.RequireFromString("10.00"),
		Categories: xpto, Eligibility: JuridicalNotSimples, Period: period,
	}, entity.TaxPIS, entity.TaxCOFINS, entity.TaxCSLL)
	if err != nil {
		return nil, fmt.Errorf("catálogo: %w", err)
	}
	return []Calculator{iss, pis, cofins, csll, pcc}, nil
}
