package entity

import "github.com/jhoicas/Impuestos-api/internal/domain"

// DocumentKind etiqueta del documento fiscal.
type DocumentKind string

// Etiquetas tal como llegan en las fuentes de carga.
const (
	DocumentCPF     DocumentKind = "CPF"       // persona natural nacional
	DocumentCNPJ    DocumentKind = "CNPJ"      // persona jurídica nacional
	DocumentForeign DocumentKind = "Foreigner" // identificación extranjera
)

// Document unión cerrada: solo CPF, CNPJ y ForeignID la implementan.
type Document interface {
	Kind() DocumentKind
	Value() string
	sealedDocument()
}

// CPF documento de persona natural nacional.
type CPF string

// CNPJ documento de persona jurídica nacional.
type CNPJ string

// ForeignID documento extranjero.
type ForeignID string

func (CPF) Kind() DocumentKind       { return DocumentCPF }
func (d CPF) Value() string          { return string(d) }
func (CPF) sealedDocument()          {}
func (CNPJ) Kind() DocumentKind      { return DocumentCNPJ }
func (d CNPJ) Value() string         { return string(d) }
func (CNPJ) sealedDocument()         {}
func (ForeignID) Kind() DocumentKind { return DocumentForeign }
func (d ForeignID) Value() string    { return string(d) }
func (ForeignID) sealedDocument()    {}

// ParseDocument construye el documento según su etiqueta.
// Devuelve *domain.UnrecognizedDocumentTypeError si la etiqueta no es conocida.
func ParseDocument(tag, value string) (Document, error) {
	switch DocumentKind(tag) {
	case DocumentCPF:
		return CPF(value), nil
	case DocumentCNPJ:
		return CNPJ(value), nil
	case DocumentForeign:
		return ForeignID(value), nil
	default:
		return nil, &domain.UnrecognizedDocumentTypeError{Tag: tag}
	}
}
