package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"inventory-system/pkg/constants"
)

// AsignarMaterialDTO is the body of POST /api/materiales/:id/asignar.
// UsuarioRegistroID is ignored when the request is authenticated.
type AsignarMaterialDTO struct {
	PersonaID         uint64      `json:"personaId" validate:"required,gt=0"`
	Motivo            null.String `json:"motivo" validate:"omitempty,max=500"`
	Observaciones     null.String `json:"observaciones" validate:"omitempty,max=1000"`
	UsuarioRegistroID null.Uint64 `json:"usuarioRegistroId" validate:"omitempty,gt=0"`
}

type DesasignarMaterialDTO struct {
	Motivo            null.String `json:"motivo" validate:"omitempty,max=500"`
	Observaciones     null.String `json:"observaciones" validate:"omitempty,max=1000"`
	UsuarioRegistroID null.Uint64 `json:"usuarioRegistroId" validate:"omitempty,gt=0"`
}

type AsignacionHistorialDTO struct {
	ID                    uint64                   `json:"id"`
	MaterialID            uint64                   `json:"materialId"`
	PersonaID             null.Uint64              `json:"personaId"`
	PersonaNombreCompleto null.String              `json:"personaNombreCompleto"`
	OficinaID             uint64                   `json:"oficinaId"`
	OficinaNumero         int                      `json:"oficinaNumero"`
	FechaAsignacion       time.Time                `json:"fechaAsignacion"`
	FechaDesasignacion    *time.Time               `json:"fechaDesasignacion"`
	Estado                constants.EstadoMaterial `json:"estado"`
	EstadoDescripcion     string                   `json:"estadoDescripcion"`
	Motivo                null.String              `json:"motivo"`
	Observaciones         null.String              `json:"observaciones"`
	UsuarioRegistroID     uint64                   `json:"usuarioRegistroId"`
	UsuarioRegistro       string                   `json:"usuarioRegistro"`
	FechaRegistro         time.Time                `json:"fechaRegistro"`
}
