package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                 = errors.New("recurso no encontrado")
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrUnauthorized             = errors.New("no autorizado")
	ErrForbidden                = errors.New("acceso denegado")
	ErrTemporalBounds           = bitemporal.ErrTemporalBounds
	ErrClassificationNotFound   = errors.New("clasificación fiscal no encontrada")
	ErrUnrecognizedDocumentType = errors.New("tipo de documento desconocido")
	ErrUnknownTaxType           = errors.New("tipo de impuesto desconocido")
	ErrInvalidRule              = errors.New("regla de cálculo inválida")
)

// ClassificationNotFoundError ningún registro del contribuyente es vigente en la coordenada.
type ClassificationNotFoundError struct {
	TaxpayerID string
	ValidAt    time.Time
	KnownAt    time.Time
}

func (e *ClassificationNotFoundError) Error() string {
	return fmt.Sprintf("%s: contribuyente %s (válido en %s, conocido en %s)",
		ErrClassificationNotFound, e.TaxpayerID,
		e.ValidAt.Format(bitemporal.DateLayout), e.KnownAt.Format(time.RFC3339))
}

func (e *ClassificationNotFoundError) Is(target error) bool {
	return target == ErrClassificationNotFound
}

// UnrecognizedDocumentTypeError etiqueta de documento fuera de CPF, CNPJ y Foreigner.
type UnrecognizedDocumentTypeError struct {
	Tag string
}

func (e *UnrecognizedDocumentTypeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnrecognizedDocumentType, e.Tag)
}

func (e *UnrecognizedDocumentTypeError) Is(target error) bool {
	return target == ErrUnrecognizedDocumentType
}
