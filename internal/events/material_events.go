package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaterialAsignadoEvent    = "material.asignado"
	MaterialDesasignadoEvent = "material.desasignado"
)

// AssignmentChanged is published after an assignment transaction commits.
type AssignmentChanged struct {
	ID                uuid.UUID `json:"id"`
	Type              string    `json:"type"`
	MaterialID        uint64    `json:"materialId"`
	MaterialNombre    string    `json:"materialNombre"`
	HistorialID       uint64    `json:"historialId"`
	PersonaID         *uint64   `json:"personaId,omitempty"`
	OficinaID         uint64    `json:"oficinaId"`
	UsuarioRegistroID uint64    `json:"usuarioRegistroId"`
	OccurredAt        time.Time `json:"occurredAt"`
}

func (e AssignmentChanged) Name() string {
	return e.Type
}

func NewMaterialAsignado(materialID, historialID, personaID, oficinaID, registrantID uint64, nombre string, at time.Time) AssignmentChanged {
	return AssignmentChanged{
		ID:                uuid.New(),
		Type:              MaterialAsignadoEvent,
		MaterialID:        materialID,
		MaterialNombre:    nombre,
		HistorialID:       historialID,
		PersonaID:         &personaID,
		OficinaID:         oficinaID,
		UsuarioRegistroID: registrantID,
		OccurredAt:        at,
	}
}

// NewMaterialDesasignado carries the person the material was taken from.
func NewMaterialDesasignado(materialID, historialID uint64, personaID *uint64, oficinaID, registrantID uint64, nombre string, at time.Time) AssignmentChanged {
	return AssignmentChanged{
		ID:                uuid.New(),
		Type:              MaterialDesasignadoEvent,
		MaterialID:        materialID,
		MaterialNombre:    nombre,
		HistorialID:       historialID,
		PersonaID:         personaID,
		OficinaID:         oficinaID,
		UsuarioRegistroID: registrantID,
		OccurredAt:        at,
	}
}
