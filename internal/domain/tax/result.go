package tax

import (
	"github.com/shopspring/decimal"
)

// ResultKind clasificación del resultado de una regla (útil en logs y respuestas de auditoría).
type ResultKind string

const (
	KindApplicable     ResultKind = "APPLICABLE"
	KindNotApplicable  ResultKind = "NOT_APPLICABLE"
	KindBelowThreshold ResultKind = "BELOW_THRESHOLD"
)

// Result resultado de evaluar una regla: Applicable, NotApplicable o BelowThreshold.
type Result interface {
	Kind() ResultKind
	sealedResult()
}

// Applicable el impuesto se cobra por Amount.
type Applicable struct {
	Amount decimal.Decimal
}

// NotApplicable la regla no aplica al ítem/clasificación.
type NotApplicable struct {
	Reason string
}

// BelowThreshold el monto calculado no alcanza el mínimo cobrable; el impuesto se suprime.
type BelowThreshold struct {
	Amount    decimal.Decimal
	Threshold decimal.Decimal
}

func (Applicable) Kind() ResultKind     { return KindApplicable }
func (Applicable) sealedResult()        {}
func (NotApplicable) Kind() ResultKind  { return KindNotApplicable }
func (NotApplicable) sealedResult()     {}
func (BelowThreshold) Kind() ResultKind { return KindBelowThreshold }
func (BelowThreshold) sealedResult()    {}

// applyThreshold comparación estricta: un monto igual al mínimo es cobrable.
func applyThreshold(amount, threshold decimal.Decimal) Result {
	if amount.LessThan(threshold) {
		return BelowThreshold{Amount: amount, Threshold: threshold}
	}
	return Applicable{Amount: amount}
}
