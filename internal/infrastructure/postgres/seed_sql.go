package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
)

// InsertStatement SQL literal de inserción para el script de seed.
// recorded_at se escribe en UTC con zona explícita para no depender de la zona de la sesión.
func InsertStatement(c *entity.TaxpayerClassification) string {
	until := "NULL"
	if c.ValidUntil != nil {
		until = "'" + c.ValidUntil.Format(bitemporal.DateLayout) + "'"
	}
	return fmt.Sprintf("INSERT INTO taxpayer_classifications (taxpayer_id, document_type, document_value, person_type, residency, tax_regime, valid_from, valid_until, recorded_at)\n"+
		"VALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s', %s, '%s');\n",
		escapeSQL(c.TaxpayerID),
		escapeSQL(string(c.Document.Kind())),
		escapeSQL(c.Document.Value()),
		c.PersonKind, c.Residency, c.Regime,
		c.ValidFrom.Format(bitemporal.DateLayout),
		until,
		c.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
