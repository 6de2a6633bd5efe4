package taxcalc

import (
	"time"

	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/jhoicas/Impuestos-api/internal/domain/repository"
	"github.com/jhoicas/Impuestos-api/internal/domain/tax"
)

// LookupUseCase consultas puntuales de auditoría: qué versión estaba vigente en una coordenada.
type LookupUseCase struct {
	taxpayers repository.TaxpayerClassificationRepository
	rules     tax.Resolver
}

// NewLookupUseCase construye el caso de uso.
func NewLookupUseCase(taxpayers repository.TaxpayerClassificationRepository, rules tax.Resolver) *LookupUseCase {
	return &LookupUseCase{taxpayers: taxpayers, rules: rules}
}

// Classification clasificación vigente del contribuyente en (validAt, knownAt).
func (uc *LookupUseCase) Classification(taxpayerID string, validAt, knownAt time.Time) (*entity.TaxpayerClassification, error) {
	if taxpayerID == "" {
		return nil, domain.ErrInvalidInput
	}
	at := bitemporal.At(validAt, knownAt)
	c, ok := uc.taxpayers.Resolve(taxpayerID, at)
	if !ok {
		return nil, &domain.ClassificationNotFoundError{TaxpayerID: taxpayerID, ValidAt: at.ValidAt, KnownAt: at.KnownAt}
	}
	return c, nil
}

// Rule versión de regla vigente para el tipo en (validAt, knownAt). domain.ErrNotFound si no hay ninguna.
func (uc *LookupUseCase) Rule(taxType string, validAt, knownAt time.Time) (tax.Calculator, error) {
	t, err := tax.ParseTaxType(taxType)
	if err != nil {
		return nil, err
	}
	rule, ok := uc.rules.Resolve(t, bitemporal.At(validAt, knownAt))
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rule, nil
}
