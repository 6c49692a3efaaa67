package entities

import (
	"time"

	"inventory-system/pkg/constants"
)

// AssignmentHistory is one append-only row of the material assignment log.
// PersonaID is nil for unassignment events.
type AssignmentHistory struct {
	ID                 uint64                   `db:"id"`
	MaterialID         uint64                   `db:"material_id"`
	PersonaID          *uint64                  `db:"persona_id"`
	OficinaID          uint64                   `db:"oficina_id"`
	FechaAsignacion    time.Time                `db:"fecha_asignacion"`
	FechaDesasignacion *time.Time               `db:"fecha_desasignacion"`
	Estado             constants.EstadoMaterial `db:"estado"`
	Motivo             *string                  `db:"motivo"`
	Observaciones      *string                  `db:"observaciones"`
	UsuarioRegistroID  uint64                   `db:"usuario_registro_id"`
	FechaRegistro      time.Time                `db:"fecha_registro"`
}

func (h AssignmentHistory) Open() bool {
	return h.FechaDesasignacion == nil
}
