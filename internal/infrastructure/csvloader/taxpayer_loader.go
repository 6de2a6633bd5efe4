// Package csvloader colaborador de carga de clasificaciones fiscales desde archivos CSV.
//
// Formato: una cabecera (se ignora) y una fila por registro con 9 campos separados por coma:
// actor_id, document_type, document_value, person_type, residency, tax_regime,
// valid_from (YYYY-MM-DD), valid_to (vacío = abierto), recorded_at (YYYY-MM-DDTHH:MM[:SS]).
package csvloader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/jhoicas/Impuestos-api/internal/domain/repository"
	"github.com/jhoicas/Impuestos-api/pkg/logger"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// FieldCount campos por fila.
const FieldCount = 9

// Encodings soportados.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

var recordedAtLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

var _ repository.TaxpayerSource = (*TaxpayerLoader)(nil)

// TaxpayerLoader lee el CSV de clasificaciones desde disco.
type TaxpayerLoader struct {
	path     string
	encoding string
	log      *logger.Logger
}

// NewTaxpayerLoader construye el cargador. encoding vacío equivale a UTF-8.
func NewTaxpayerLoader(path, encoding string, log *logger.Logger) *TaxpayerLoader {
	return &TaxpayerLoader{path: path, encoding: encoding, log: log}
}

// Load abre el archivo y parsea todos los registros. Cualquier fila inválida aborta la carga.
func (l *TaxpayerLoader) Load(_ context.Context) ([]*entity.TaxpayerClassification, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("abrir CSV %s: %w", l.path, err)
	}
	defer f.Close()

	r, err := DecodeReader(f, l.encoding)
	if err != nil {
		return nil, err
	}
	records, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	if l.log != nil {
		l.log.Info().Str("path", l.path).Int("registros", len(records)).Msg("clasificaciones fiscales cargadas")
	}
	return records, nil
}

// DecodeReader envuelve r para convertir exportaciones ISO-8859-1 a UTF-8.
func DecodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingLatin1, "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("encoding no soportado: %q", encoding)
	}
}

// Parse lee el contenido completo: salta la cabecera y las líneas en blanco.
func Parse(r io.Reader) ([]*entity.TaxpayerClassification, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []*entity.TaxpayerClassification
	header := true
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		if header {
			header = false
			continue
		}
		if isBlank(fields) {
			continue
		}
		line, _ := cr.FieldPos(0)
		rec, err := ParseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseRecord convierte una fila de 9 campos en una clasificación validada.
func ParseRecord(fields []string) (*entity.TaxpayerClassification, error) {
	if len(fields) != FieldCount {
		return nil, fmt.Errorf("se esperaban %d campos, hay %d", FieldCount, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	doc, err := entity.ParseDocument(fields[1], fields[2])
	if err != nil {
		return nil, err
	}
	personKind, err := entity.ParsePersonKind(fields[3])
	if err != nil {
		return nil, err
	}
	residency, err := entity.ParseResidency(fields[4])
	if err != nil {
		return nil, err
	}
	regime, err := entity.ParseTaxRegime(fields[5])
	if err != nil {
		return nil, err
	}
	validFrom, err := bitemporal.ParseDate(fields[6])
	if err != nil {
		return nil, err
	}
	var validUntil *time.Time
	if fields[7] != "" {
		t, err := bitemporal.ParseDate(fields[7])
		if err != nil {
			return nil, err
		}
		validUntil = &t
	}
	recordedAt, err := ParseTimestamp(fields[8])
	if err != nil {
		return nil, err
	}
	period, err := bitemporal.NewPeriod(validFrom, validUntil, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("contribuyente %s: %w", fields[0], err)
	}
	return entity.NewTaxpayerClassification(fields[0], doc, personKind, residency, regime, period)
}

// ParseTimestamp interpreta fecha-hora local ISO (sin zona se asume UTC).
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range recordedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("recorded_at inválido %q", s)
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
