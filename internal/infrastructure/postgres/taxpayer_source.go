package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/jhoicas/Impuestos-api/internal/domain/repository"
)

var _ repository.TaxpayerSource = (*TaxpayerSource)(nil)

// Schema tabla append-only de clasificaciones fiscales. Las correcciones se insertan, nunca se actualizan.
const Schema = `
CREATE TABLE IF NOT EXISTS taxpayer_classifications (
	id             BIGSERIAL PRIMARY KEY,
	taxpayer_id    TEXT        NOT NULL,
	document_type  TEXT        NOT NULL,
	document_value TEXT        NOT NULL,
	person_type    TEXT        NOT NULL,
	residency      TEXT        NOT NULL,
	tax_regime     TEXT        NOT NULL,
	valid_from     DATE        NOT NULL,
	valid_until    DATE,
	recorded_at    TIMESTAMPTZ NOT NULL,
	CHECK (valid_until IS NULL OR valid_until > valid_from),
	UNIQUE (taxpayer_id, valid_from, recorded_at)
);
CREATE INDEX IF NOT EXISTS idx_taxpayer_classifications_taxpayer ON taxpayer_classifications (taxpayer_id);
`

// TaxpayerSource colaborador de carga que lee todas las clasificaciones desde PostgreSQL.
type TaxpayerSource struct {
	q Querier
}

// NewTaxpayerSource construye el adaptador. Pasar pool o tx (Querier).
func NewTaxpayerSource(q Querier) *TaxpayerSource {
	return &TaxpayerSource{q: q}
}

// Load lee los registros en orden de inserción y los valida igual que el cargador CSV.
func (s *TaxpayerSource) Load(ctx context.Context) ([]*entity.TaxpayerClassification, error) {
	query := `
		SELECT taxpayer_id, document_type, document_value, person_type, residency, tax_regime,
		       valid_from, valid_until, recorded_at
		FROM taxpayer_classifications ORDER BY id`
	rows, err := s.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list taxpayer_classifications: %w", err)
	}
	defer rows.Close()

	var list []*entity.TaxpayerClassification
	for rows.Next() {
		var (
			taxpayerID, docType, docValue, personType, residency, regime string
			validFrom, recordedAt                                        time.Time
			validUntil                                                   *time.Time
		)
		if err := rows.Scan(&taxpayerID, &docType, &docValue, &personType, &residency, &regime,
			&validFrom, &validUntil, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan taxpayer_classification: %w", err)
		}
		rec, err := toClassification(taxpayerID, docType, docValue, personType, residency, regime, validFrom, validUntil, recordedAt.UTC())
		if err != nil {
			return nil, fmt.Errorf("contribuyente %s: %w", taxpayerID, err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func toClassification(
	taxpayerID, docType, docValue, personType, residency, regime string,
	validFrom time.Time, validUntil *time.Time, recordedAt time.Time,
) (*entity.TaxpayerClassification, error) {
	doc, err := entity.ParseDocument(docType, docValue)
	if err != nil {
		return nil, err
	}
	pk, err := entity.ParsePersonKind(personType)
	if err != nil {
		return nil, err
	}
	res, err := entity.ParseResidency(residency)
	if err != nil {
		return nil, err
	}
	reg, err := entity.ParseTaxRegime(regime)
	if err != nil {
		return nil, err
	}
	period, err := bitemporal.NewPeriod(validFrom, validUntil, recordedAt)
	if err != nil {
		return nil, err
	}
	return entity.NewTaxpayerClassification(taxpayerID, doc, pk, res, reg, period)
}

// EnsureSchema crea la tabla si no existe.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("crear esquema taxpayer_classifications: %w", err)
	}
	return nil
}

// TaxpayerWriter agrega clasificaciones. No existe actualización ni borrado: las correcciones
// son registros nuevos con recorded_at posterior.
type TaxpayerWriter struct {
	q Querier
}

// NewTaxpayerWriter construye el writer. Pasar pool o tx (Querier).
func NewTaxpayerWriter(q Querier) *TaxpayerWriter {
	return &TaxpayerWriter{q: q}
}

// Append inserta el registro. Un duplicado (mismo contribuyente, valid_from y recorded_at) es domain.ErrInvalidInput.
func (w *TaxpayerWriter) Append(ctx context.Context, c *entity.TaxpayerClassification) error {
	query := `
		INSERT INTO taxpayer_classifications
			(taxpayer_id, document_type, document_value, person_type, residency, tax_regime,
			 valid_from, valid_until, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := w.q.Exec(ctx, query,
		c.TaxpayerID, string(c.Document.Kind()), c.Document.Value(),
		string(c.PersonKind), string(c.Residency), string(c.Regime),
		c.ValidFrom, c.ValidUntil, c.RecordedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: clasificación duplicada de %s %s", domain.ErrInvalidInput, c.TaxpayerID, c.Period)
		}
		return fmt.Errorf("insert taxpayer_classification: %w", err)
	}
	return nil
}
