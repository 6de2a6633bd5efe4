package repository

import (
	"context"

	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
)

// TaxpayerClassificationRepository puerto de consulta de clasificaciones fiscales versionadas.
type TaxpayerClassificationRepository interface {
	// Resolve devuelve el registro vigente en la coordenada con mayor RecordedAt.
	// (nil, false) no es un error en esta capa: decide el llamador.
	Resolve(taxpayerID string, at bitemporal.Coordinate) (*entity.TaxpayerClassification, bool)

	// ResolveMany resuelve cada id de forma independiente y omite los que no tienen registro vigente.
	ResolveMany(taxpayerIDs []string, at bitemporal.Coordinate) map[string]*entity.TaxpayerClassification
}

// TaxpayerSource colaborador de carga: entrega los registros ya validados (límites temporales,
// tipo de documento). Se invoca una sola vez al arrancar.
type TaxpayerSource interface {
	Load(ctx context.Context) ([]*entity.TaxpayerClassification, error)
}
