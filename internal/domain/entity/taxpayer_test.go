package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_EtiquetasConocidas(t *testing.T) {
	cases := []struct {
		tag  string
		kind entity.DocumentKind
	}{
		{"CPF", entity.DocumentCPF},
		{"CNPJ", entity.DocumentCNPJ},
		{"Foreigner", entity.DocumentForeign},
	}
	for _, tc := range cases {
		doc, err := entity.ParseDocument(tc.tag, "123")
		require.NoError(t, err, tc.tag)
		assert.Equal(t, tc.kind, doc.Kind())
		assert.Equal(t, "123", doc.Value())
	}
}

func TestParseDocument_EtiquetaDesconocida(t *testing.T) {
	_, err := entity.ParseDocument("RG", "123")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnrecognizedDocumentType)

	var unknown *domain.UnrecognizedDocumentTypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "RG", unknown.Tag)
}

func TestParseEnums_ValorInvalido(t *testing.T) {
	_, err := entity.ParsePersonKind("EMPRESA")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = entity.ParseResidency("LOCAL")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = entity.ParseTaxRegime("SIMPLES")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	regime, err := entity.ParseTaxRegime("LUCRO_REAL")
	require.NoError(t, err)
	assert.Equal(t, entity.RegimeLucroReal, regime)
}

func TestNewTaxpayerClassification_LimitesInvalidos(t *testing.T) {
	until := bitemporal.Date(2024, time.December, 31)
	period := bitemporal.Period{
		ValidFrom:  bitemporal.Date(2025, time.January, 1),
		ValidUntil: &until,
		RecordedAt: time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC),
	}
	_, err := entity.NewTaxpayerClassification("actor-9", entity.CNPJ("1"), entity.PersonJuridical,
		entity.ResidencyNational, entity.RegimeLucroReal, period)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTemporalBounds)
}

func TestNewTaxpayerClassification_SatisfaceVersioned(t *testing.T) {
	period, err := bitemporal.NewPeriod(bitemporal.Date(2025, time.January, 1), nil, time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	c, err := entity.NewTaxpayerClassification("actor-1", entity.CNPJ("1"), entity.PersonJuridical,
		entity.ResidencyNational, entity.RegimeSimplesNacional, period)
	require.NoError(t, err)

	var v bitemporal.Versioned = c
	assert.Equal(t, period, v.Bitemporal())

	_, err = entity.NewTaxpayerClassification("", entity.CNPJ("1"), entity.PersonJuridical,
		entity.ResidencyNational, entity.RegimeSimplesNacional, period)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "id vacío")
}

func TestOrder_TaxpayerIDsDistintosEnOrden(t *testing.T) {
	order := &entity.Order{Items: []entity.OrderItem{
		{Category: entity.CategoryXPTO, Value: decimal.NewFromInt(1), TaxpayerID: "actor-2"},
		{Category: entity.CategoryXPTO, Value: decimal.NewFromInt(2), TaxpayerID: "actor-1"},
		{Category: entity.CategoryXPTO, Value: decimal.NewFromInt(3), TaxpayerID: "actor-2"},
	}}
	assert.Equal(t, []string{"actor-2", "actor-1"}, order.TaxpayerIDs())
}

func TestTaxTypes_OrdenDeDeclaracion(t *testing.T) {
	assert.Equal(t, []entity.TaxType{entity.TaxISS, entity.TaxPIS, entity.TaxCOFINS, entity.TaxCSLL, entity.TaxPCC}, entity.TaxTypes())
}
