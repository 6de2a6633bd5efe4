// Package bitemporal define el contrato de vigencia en dos ejes (tiempo válido y tiempo de registro)
// compartido por toda entidad versionada: clasificaciones fiscales y reglas de cálculo.
package bitemporal

import (
	"fmt"
	"time"
)

// DateLayout formato de fecha de vigencia (sin hora).
const DateLayout = "2006-01-02"

// Period ventana bitemporal de un registro versionado.
// ValidUntil nil significa vigencia abierta. La ventana de tiempo válido es inclusiva en ambos extremos.
type Period struct {
	ValidFrom  time.Time
	ValidUntil *time.Time
	RecordedAt time.Time
}

// Coordinate punto de consulta: ValidAt (fecha del hecho) y KnownAt (momento de conocimiento).
type Coordinate struct {
	ValidAt time.Time
	KnownAt time.Time
}

// Versioned cualquier registro que expone su ventana bitemporal.
type Versioned interface {
	Bitemporal() Period
}

// Date construye una fecha de vigencia en UTC a medianoche.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf trunca un instante a su fecha calendario (en la zona del instante) y la normaliza a UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate interpreta una fecha YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q (esperado YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// At construye una coordenada normalizando el tiempo válido a fecha.
func At(validAt, knownAt time.Time) Coordinate {
	return Coordinate{ValidAt: DateOf(validAt), KnownAt: knownAt}
}

// NewPeriod construye y valida una ventana. Las fechas de vigencia se normalizan a fecha calendario.
func NewPeriod(validFrom time.Time, validUntil *time.Time, recordedAt time.Time) (Period, error) {
	p := Period{ValidFrom: DateOf(validFrom), RecordedAt: recordedAt}
	if validUntil != nil {
		until := DateOf(*validUntil)
		p.ValidUntil = &until
	}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate falla con *BoundsError si ValidUntil existe y no es estrictamente posterior a ValidFrom.
func (p Period) Validate() error {
	if p.ValidUntil != nil && !p.ValidUntil.After(p.ValidFrom) {
		return &BoundsError{ValidFrom: p.ValidFrom, ValidUntil: *p.ValidUntil}
	}
	return nil
}

// IsValidAt validFrom <= validAt <= validUntil (o abierto) y recordedAt <= knownAt.
// validAt se compara como fecha calendario aunque la coordenada traiga hora.
func (p Period) IsValidAt(at Coordinate) bool {
	validAt := DateOf(at.ValidAt)
	if validAt.Before(p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && validAt.After(*p.ValidUntil) {
		return false
	}
	return !p.RecordedAt.After(at.KnownAt)
}

// Bitemporal permite embeber Period y satisfacer Versioned.
func (p Period) Bitemporal() Period { return p }

// String representación legible para mensajes de error y logs.
func (p Period) String() string {
	until := "∞"
	if p.ValidUntil != nil {
		until = p.ValidUntil.Format(DateLayout)
	}
	return fmt.Sprintf("[válido %s..%s, registrado %s]",
		p.ValidFrom.Format(DateLayout), until, p.RecordedAt.Format(time.RFC3339))
}

// Latest filtra los registros vigentes en la coordenada y devuelve el de mayor RecordedAt.
// Ante empate gana el primero en orden de registro. ok=false si ninguno es vigente.
func Latest[T Versioned](records []T, at Coordinate) (T, bool) {
	var (
		best  T
		found bool
	)
	for _, r := range records {
		p := r.Bitemporal()
		if !p.IsValidAt(at) {
			continue
		}
		if !found || p.RecordedAt.After(best.Bitemporal().RecordedAt) {
			best = r
			found = true
		}
	}
	return best, found
}
