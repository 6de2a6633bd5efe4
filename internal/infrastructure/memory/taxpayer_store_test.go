package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/jhoicas/Impuestos-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	records []*entity.TaxpayerClassification
	err     error
}

func (s stubSource) Load(context.Context) ([]*entity.TaxpayerClassification, error) {
	return s.records, s.err
}

func record(t *testing.T, id string, regime entity.TaxRegime, from time.Time, until *time.Time, rec time.Time) *entity.TaxpayerClassification {
	t.Helper()
	p, err := bitemporal.NewPeriod(from, until, rec)
	require.NoError(t, err)
	c, err := entity.NewTaxpayerClassification(id, entity.CNPJ("1"), entity.PersonJuridical, entity.ResidencyNational, regime, p)
	require.NoError(t, err)
	return c
}

func TestTaxpayerStore_CambioDeRegimenYCorreccion(t *testing.T) {
	jan := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
	june30 := bitemporal.Date(2025, time.June, 30)
	store, err := memory.NewTaxpayerStore([]*entity.TaxpayerClassification{
		record(t, "actor-4", entity.RegimeLucroReal, bitemporal.Date(2025, time.January, 1), &june30, jan),
		record(t, "actor-4", entity.RegimeSimplesNacional, bitemporal.Date(2025, time.July, 1), nil, time.Date(2025, time.June, 20, 9, 30, 0, 0, time.UTC)),
		// corrección tardía: en realidad era Lucro Presumido desde enero
		record(t, "actor-4", entity.RegimeLucroPresumido, bitemporal.Date(2025, time.January, 1), &june30, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, 1, store.Taxpayers())

	june := bitemporal.Date(2025, time.June, 15)
	c, ok := store.Resolve("actor-4", bitemporal.At(june, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, ok)
	assert.Equal(t, entity.RegimeLucroReal, c.Regime, "antes de la corrección")

	c, ok = store.Resolve("actor-4", bitemporal.At(june, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, ok)
	assert.Equal(t, entity.RegimeLucroPresumido, c.Regime, "la corrección gana una vez conocida")

	c, ok = store.Resolve("actor-4", bitemporal.At(bitemporal.Date(2025, time.August, 1), time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, ok)
	assert.Equal(t, entity.RegimeSimplesNacional, c.Regime)

	_, ok = store.Resolve("actor-4", bitemporal.At(bitemporal.Date(2025, time.August, 1), time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, ok, "el registro de julio aún no era conocido")
}

func TestTaxpayerStore_ResolveManyOmiteFaltantes(t *testing.T) {
	jan := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
	store, err := memory.NewTaxpayerStore([]*entity.TaxpayerClassification{
		record(t, "actor-1", entity.RegimeSimplesNacional, bitemporal.Date(2025, time.January, 1), nil, jan),
		record(t, "actor-2", entity.RegimeLucroPresumido, bitemporal.Date(2025, time.January, 1), nil, jan),
	})
	require.NoError(t, err)

	got := store.ResolveMany([]string{"actor-1", "actor-2", "actor-9"}, bitemporal.At(bitemporal.Date(2025, time.March, 1), jan))
	assert.Len(t, got, 2)
	assert.Contains(t, got, "actor-1")
	assert.Contains(t, got, "actor-2")
	assert.NotContains(t, got, "actor-9")
}

func TestNewTaxpayerStore_RegistroNil(t *testing.T) {
	_, err := memory.NewTaxpayerStore([]*entity.TaxpayerClassification{nil})
	assert.Error(t, err)
}

func TestLoadTaxpayerStore_PropagaErrorDeFuente(t *testing.T) {
	boom := errors.New("fuente caída")
	_, err := memory.LoadTaxpayerStore(context.Background(), stubSource{err: boom})
	assert.ErrorIs(t, err, boom)

	store, err := memory.LoadTaxpayerStore(context.Background(), stubSource{})
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}
