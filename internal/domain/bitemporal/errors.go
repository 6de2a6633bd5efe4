package bitemporal

import (
	"errors"
	"fmt"
	"time"
)

// ErrTemporalBounds ventana de vigencia invertida o de ancho cero.
var ErrTemporalBounds = errors.New("límites temporales inválidos")

// BoundsError detalle de una ventana inválida; errors.Is(err, ErrTemporalBounds) es true.
type BoundsError struct {
	ValidFrom  time.Time
	ValidUntil time.Time
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: valid_until %s debe ser posterior a valid_from %s",
		ErrTemporalBounds, e.ValidUntil.Format(DateLayout), e.ValidFrom.Format(DateLayout))
}

func (e *BoundsError) Is(target error) bool { return target == ErrTemporalBounds }
