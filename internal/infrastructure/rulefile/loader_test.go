package rulefile_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/jhoicas/Impuestos-api/internal/domain/tax"
	"github.com/jhoicas/Impuestos-api/internal/infrastructure/rulefile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classification(t *testing.T, pk entity.PersonKind, regime entity.TaxRegime) *entity.TaxpayerClassification {
	t.Helper()
	p, err := bitemporal.NewPeriod(bitemporal.Date(2020, time.January, 1), nil, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	c, err := entity.NewTaxpayerClassification("actor", entity.CNPJ("1"), pk, entity.ResidencyNational, regime, p)
	require.NoError(t, err)
	return c
}

func TestLoad_CatalogoDeEjemplo(t *testing.T) {
	rules, err := rulefile.Load("../../../testdata/rules-2020.yaml")
	require.NoError(t, err)
	require.Len(t, rules, 4)

	pis := rules[0]
	assert.Equal(t, "pis-2020", pis.ID())
	assert.Equal(t, entity.TaxPIS, pis.TaxType())
	assert.True(t, decimal.RequireFromString("0.10").Equal(pis.Rate()))
	p := pis.Bitemporal()
	assert.Equal(t, bitemporal.Date(2020, time.January, 1), p.ValidFrom)
	require.NotNil(t, p.ValidUntil)
	assert.Equal(t, bitemporal.Date(2024, time.December, 31), *p.ValidUntil)
	assert.Equal(t, time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC), p.RecordedAt)

	pcc, ok := rules[3].(*tax.CompositeRule)
	require.True(t, ok, "components no vacío construye una regla compuesta")
	assert.Equal(t, []entity.TaxType{entity.TaxPIS, entity.TaxCOFINS, entity.TaxCSLL}, pcc.Components())
}

// El catálogo 2025 incorporado más las versiones 2020 del YAML: un pedido de 2023
// se evalúa íntegramente con las reglas 2020, incluida la elegibilidad JSON-logic de PCC.
func TestLoad_IntegradoConCatalogoIncorporado(t *testing.T) {
	extra, err := rulefile.Load("../../../testdata/rules-2020.yaml")
	require.NoError(t, err)
	builtin, err := tax.BuiltinRules()
	require.NoError(t, err)
	reg, err := tax.NewRegistry(append(builtin, extra...)...)
	require.NoError(t, err)

	at := bitemporal.At(bitemporal.Date(2023, time.June, 15), time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC))
	pcc, ok := reg.Resolve(entity.TaxPCC, at)
	require.True(t, ok)
	assert.Equal(t, "pcc-2020", pcc.ID())

	it := entity.OrderItem{Category: entity.CategoryXPTO, Value: decimal.NewFromInt(1000), TaxpayerID: "actor"}
	res := pcc.Evaluate(it, classification(t, entity.PersonJuridical, entity.RegimeLucroPresumido), at, reg)
	applicable, ok := res.(tax.Applicable)
	require.True(t, ok, "resultado %s", res.Kind())
	assert.True(t, decimal.NewFromInt(110).Equal(applicable.Amount), "PIS 100 + COFINS 5 + CSLL 5")

	res = pcc.Evaluate(it, classification(t, entity.PersonJuridical, entity.RegimeSimplesNacional), at, reg)
	assert.Equal(t, tax.KindNotApplicable, res.Kind(), "Simples Nacional no califica")
}

func TestParse_ReglaSimpleConElegibilidad(t *testing.T) {
	data := []byte(`
rules:
  - id: iss-2026
    tax_type: iss
    rate: "0.05"
    threshold: "1.00"
    categories: [XPTO]
    valid_from: "2026-01-01"
    recorded_at: "2025-12-01T08:00:00Z"
    eligibility:
      and:
        - "==": [{var: taxpayer.person_kind}, JURIDICAL]
        - ">=": [{var: item.value}, 500]
`)
	rules, err := rulefile.Parse(data)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	iss := rules[0]
	assert.Equal(t, entity.TaxISS, iss.TaxType())
	assert.Nil(t, iss.Bitemporal().ValidUntil)

	juridical := classification(t, entity.PersonJuridical, entity.RegimeLucroReal)
	natural := classification(t, entity.PersonNatural, entity.RegimeMEI)
	big := entity.OrderItem{Category: entity.CategoryXPTO, Value: decimal.NewFromInt(1000)}
	small := entity.OrderItem{Category: entity.CategoryXPTO, Value: decimal.NewFromInt(100)}

	assert.True(t, iss.IsApplicable(big, juridical))
	assert.False(t, iss.IsApplicable(small, juridical), "valor bajo el límite de la expresión")
	assert.False(t, iss.IsApplicable(big, natural), "persona natural")
	assert.False(t, iss.IsApplicable(big, nil), "sin clasificación la expresión no es verdadera")
}

func TestParse_Errores(t *testing.T) {
	cases := map[string]struct {
		yaml   string
		target error
	}{
		"tipo desconocido": {`rules: [{id: x, tax_type: IVA, rate: "0.1", threshold: "0", valid_from: "2025-01-01", recorded_at: "2025-01-01T00:00:00"}]`, domain.ErrUnknownTaxType},
		"tasa inválida":    {`rules: [{id: x, tax_type: PIS, rate: "diez", threshold: "0", valid_from: "2025-01-01", recorded_at: "2025-01-01T00:00:00"}]`, domain.ErrInvalidRule},
		"tasa ausente":     {`rules: [{id: x, tax_type: PIS, threshold: "0", valid_from: "2025-01-01", recorded_at: "2025-01-01T00:00:00"}]`, domain.ErrInvalidRule},
		"límites":          {`rules: [{id: x, tax_type: PIS, rate: "0.1", threshold: "0", valid_from: "2025-01-01", valid_until: "2024-01-01", recorded_at: "2025-01-01T00:00:00"}]`, domain.ErrTemporalBounds},
		"recorded_at":      {`rules: [{id: x, tax_type: PIS, rate: "0.1", threshold: "0", valid_from: "2025-01-01", recorded_at: "ayer"}]`, domain.ErrInvalidRule},
		"elegibilidad":     {`rules: [{id: x, tax_type: PIS, rate: "0.1", threshold: "0", valid_from: "2025-01-01", recorded_at: "2025-01-01T00:00:00", eligibility: true}]`, domain.ErrInvalidRule},
		"componente":       {`rules: [{id: x, tax_type: PCC, rate: "0", threshold: "0", valid_from: "2025-01-01", recorded_at: "2025-01-01T00:00:00", components: [IVA]}]`, domain.ErrUnknownTaxType},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := rulefile.Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.target)
		})
	}

	_, err := rulefile.Parse([]byte("rules: [::"))
	assert.Error(t, err, "YAML mal formado")

	_, err = rulefile.Load("no-existe.yaml")
	assert.Error(t, err)
}
