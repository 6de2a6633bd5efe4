package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/jhoicas/Impuestos-api/internal/domain/repository"
)

var _ repository.TaxpayerClassificationRepository = (*TaxpayerStore)(nil)

// TaxpayerStore instantánea inmutable de clasificaciones, agrupadas por contribuyente.
// Se construye una sola vez; no expone escrituras, por lo que las lecturas concurrentes son seguras sin locks.
type TaxpayerStore struct {
	byTaxpayer map[string][]*entity.TaxpayerClassification
	size       int
}

// NewTaxpayerStore construye la instantánea copiando los registros en orden de carga.
func NewTaxpayerStore(records []*entity.TaxpayerClassification) (*TaxpayerStore, error) {
	s := &TaxpayerStore{byTaxpayer: make(map[string][]*entity.TaxpayerClassification)}
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("registro %d nil", i)
		}
		if err := rec.Period.Validate(); err != nil {
			return nil, fmt.Errorf("registro %d (%s): %w", i, rec.TaxpayerID, err)
		}
		s.byTaxpayer[rec.TaxpayerID] = append(s.byTaxpayer[rec.TaxpayerID], rec)
		s.size++
	}
	return s, nil
}

// LoadTaxpayerStore inicialización única desde el colaborador de carga.
func LoadTaxpayerStore(ctx context.Context, src repository.TaxpayerSource) (*TaxpayerStore, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar clasificaciones: %w", err)
	}
	return NewTaxpayerStore(records)
}

// Resolve ver repository.TaxpayerClassificationRepository.
func (s *TaxpayerStore) Resolve(taxpayerID string, at bitemporal.Coordinate) (*entity.TaxpayerClassification, bool) {
	return bitemporal.Latest(s.byTaxpayer[taxpayerID], at)
}

// ResolveMany ver repository.TaxpayerClassificationRepository.
func (s *TaxpayerStore) ResolveMany(taxpayerIDs []string, at bitemporal.Coordinate) map[string]*entity.TaxpayerClassification {
	out := make(map[string]*entity.TaxpayerClassification, len(taxpayerIDs))
	for _, id := range taxpayerIDs {
		if c, ok := s.Resolve(id, at); ok {
			out[id] = c
		}
	}
	return out
}

// Len cantidad de registros cargados.
func (s *TaxpayerStore) Len() int { return s.size }

// Taxpayers cantidad de contribuyentes distintos.
func (s *TaxpayerStore) Taxpayers() int { return len(s.byTaxpayer) }
