package entity

import (
	"fmt"

	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
)

// PersonKind tipo de persona.
type PersonKind string

const (
	PersonNatural   PersonKind = "NATURAL"
	PersonJuridical PersonKind = "JURIDICAL"
)

// Residency residencia fiscal.
type Residency string

const (
	ResidencyNational  Residency = "NATIONAL"
	ResidencyForeigner Residency = "FOREIGNER"
)

// TaxRegime régimen tributario (enumeración cerrada).
type TaxRegime string

const (
	RegimeSimplesNacional TaxRegime = "SIMPLES_NACIONAL"
	RegimeLucroPresumido  TaxRegime = "LUCRO_PRESUMIDO"
	RegimeLucroReal       TaxRegime = "LUCRO_REAL"
	RegimeMEI             TaxRegime = "MEI"
)

// ParsePersonKind valida el tipo de persona.
func ParsePersonKind(s string) (PersonKind, error) {
	switch k := PersonKind(s); k {
	case PersonNatural, PersonJuridical:
		return k, nil
	}
	return "", fmt.Errorf("%w: tipo de persona %q", domain.ErrInvalidInput, s)
}

// ParseResidency valida la residencia.
func ParseResidency(s string) (Residency, error) {
	switch r := Residency(s); r {
	case ResidencyNational, ResidencyForeigner:
		return r, nil
	}
	return "", fmt.Errorf("%w: residencia %q", domain.ErrInvalidInput, s)
}

// ParseTaxRegime valida el régimen tributario.
func ParseTaxRegime(s string) (TaxRegime, error) {
	switch r := TaxRegime(s); r {
	case RegimeSimplesNacional, RegimeLucroPresumido, RegimeLucroReal, RegimeMEI:
		return r, nil
	}
	return "", fmt.Errorf("%w: régimen tributario %q", domain.ErrInvalidInput, s)
}

// TaxpayerClassification clasificación fiscal de un contribuyente, versionada bitemporalmente.
// Inmutable: las correcciones se agregan como nuevos registros con RecordedAt posterior.
type TaxpayerClassification struct {
	TaxpayerID string
	Document   Document
	PersonKind PersonKind
	Residency  Residency
	Regime     TaxRegime
	bitemporal.Period
}

// NewTaxpayerClassification construye el registro y valida la ventana de vigencia.
func NewTaxpayerClassification(
	taxpayerID string,
	doc Document,
	personKind PersonKind,
	residency Residency,
	regime TaxRegime,
	period bitemporal.Period,
) (*TaxpayerClassification, error) {
	if taxpayerID == "" || doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("clasificación de %s: %w", taxpayerID, err)
	}
	return &TaxpayerClassification{
		TaxpayerID: taxpayerID,
		Document:   doc,
		PersonKind: personKind,
		Residency:  residency,
		Regime:     regime,
		Period:     period,
	}, nil
}
