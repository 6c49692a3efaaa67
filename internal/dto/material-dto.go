package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"inventory-system/pkg/constants"
)

type CreateMaterialDTO struct {
	Nombre        string      `json:"nombre" validate:"required,max=100"`
	Modelo        null.String `json:"modelo" validate:"omitempty,max=100"`
	NumeroSerie   null.String `json:"numeroSerie" validate:"omitempty,max=100"`
	Descripcion   null.String `json:"descripcion" validate:"omitempty,max=500"`
	Marca         null.String `json:"marca" validate:"omitempty,max=50"`
	CategoriaID   uint64      `json:"categoriaId" validate:"required,gt=0"`
	OficinaID     uint64      `json:"oficinaId" validate:"required,gt=0"`
	Observaciones null.String `json:"observaciones" validate:"omitempty,max=500"`
	// Defaults to Disponible.
	Estado *constants.EstadoMaterial `json:"estado" validate:"omitempty,estado_material"`
}

type UpdateMaterialDTO struct {
	ID            uint64                   `json:"id" validate:"required,gt=0"`
	Nombre        string                   `json:"nombre" validate:"required,max=100"`
	Modelo        null.String              `json:"modelo" validate:"omitempty,max=100"`
	NumeroSerie   null.String              `json:"numeroSerie" validate:"omitempty,max=100"`
	Descripcion   null.String              `json:"descripcion" validate:"omitempty,max=500"`
	Marca         null.String              `json:"marca" validate:"omitempty,max=50"`
	CategoriaID   uint64                   `json:"categoriaId" validate:"required,gt=0"`
	OficinaID     uint64                   `json:"oficinaId" validate:"required,gt=0"`
	Observaciones null.String              `json:"observaciones" validate:"omitempty,max=500"`
	Estado        constants.EstadoMaterial `json:"estado" validate:"estado_material"`
}

type MaterialDTO struct {
	ID                      uint64                   `json:"id"`
	Nombre                  string                   `json:"nombre"`
	Modelo                  null.String              `json:"modelo"`
	NumeroSerie             null.String              `json:"numeroSerie"`
	Descripcion             null.String              `json:"descripcion"`
	Marca                   null.String              `json:"marca"`
	FechaRegistroSistema    time.Time                `json:"fechaRegistroSistema"`
	FechaAsignacion         *time.Time               `json:"fechaAsignacion"`
	Estado                  constants.EstadoMaterial `json:"estado"`
	EstadoDescripcion       string                   `json:"estadoDescripcion"`
	Observaciones           null.String              `json:"observaciones"`
	CategoriaID             uint64                   `json:"categoriaId"`
	CategoriaNombre         string                   `json:"categoriaNombre"`
	PersonaAsignadaID       null.Uint64              `json:"personaAsignadaId"`
	PersonaAsignadaNombre   null.String              `json:"personaAsignadaNombre"`
	PersonaAsignadaApellido null.String              `json:"personaAsignadaApellido"`
	PersonaAsignadaCompleto null.String              `json:"personaAsignadaCompleto"`
	OficinaID               uint64                   `json:"oficinaId"`
	OficinaNumero           int                      `json:"oficinaNumero"`
	OficinaDepartamento     null.String              `json:"oficinaDepartamento"`

	NombreCompleto    string   `json:"nombreCompleto"`
	EstaAsignado      bool     `json:"estaAsignado"`
	DiasDesdeRegistro int      `json:"diasDesdeRegistro"`
	DiasAsignado      null.Int `json:"diasAsignado"`
}

type MaterialFilterDTO struct {
	SearchTerm  string
	CategoriaID *uint64
	OficinaID   *uint64
	PersonaID   *uint64
	Estado      *constants.EstadoMaterial
}
