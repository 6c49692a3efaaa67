package entities

import (
	"time"

	"inventory-system/pkg/constants"
)

type Material struct {
	ID                   uint64                   `db:"id"`
	Nombre               string                   `db:"nombre"`
	Modelo               *string                  `db:"modelo"`
	NumeroSerie          *string                  `db:"numero_serie"`
	Descripcion          *string                  `db:"descripcion"`
	Marca                *string                  `db:"marca"`
	CategoriaID          uint64                   `db:"categoria_id"`
	Estado               constants.EstadoMaterial `db:"estado"`
	FechaRegistroSistema time.Time                `db:"fecha_registro_sistema"`
	FechaAsignacion      *time.Time               `db:"fecha_asignacion"`
	PersonaAsignadaID    *uint64                  `db:"persona_asignada_id"`
	OficinaID            uint64                   `db:"oficina_id"`
	Observaciones        *string                  `db:"observaciones"`
	FechaModificacion    *time.Time               `db:"fecha_modificacion"`

	// Joined read-only columns.
	CategoriaNombre         string  `db:"-"`
	OficinaNumero           int     `db:"-"`
	OficinaDepartamento     *string `db:"-"`
	PersonaAsignadaNombre   *string `db:"-"`
	PersonaAsignadaApellido *string `db:"-"`
}

func (m Material) EstaAsignado() bool {
	return m.PersonaAsignadaID != nil
}
