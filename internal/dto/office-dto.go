package dto

import "github.com/aarondl/null/v8"

type CreateOficinaDTO struct {
	Numero       int         `json:"numero" validate:"required,min=1,max=150"`
	Departamento null.String `json:"departamento" validate:"omitempty,max=200,departamento"`
}

type UpdateOficinaDTO struct {
	ID           uint64      `json:"id" validate:"required,gt=0"`
	Numero       int         `json:"numero" validate:"required,min=1,max=150"`
	Departamento null.String `json:"departamento" validate:"omitempty,max=200,departamento"`
}

type OficinaDTO struct {
	ID                 uint64               `json:"id"`
	Numero             int                  `json:"numero"`
	Departamento       null.String          `json:"departamento"`
	CantidadPersonas   int                  `json:"cantidadPersonas"`
	CantidadMateriales int                  `json:"cantidadMateriales"`
	PersonasAsignadas  []PersonaOficinaDTO  `json:"personasAsignadas"`
	MaterialesUbicados []MaterialOficinaDTO `json:"materialesUbicados"`
}

// PersonaOficinaDTO is the person summary embedded in an office.
type PersonaOficinaDTO struct {
	ID                   uint64 `json:"id"`
	NombreCompleto       string `json:"nombreCompleto"`
	JerarquiaDescripcion string `json:"jerarquiaDescripcion"`
	MaterialesAsignados  int    `json:"materialesAsignados"`
}

type MaterialOficinaDTO struct {
	ID                uint64      `json:"id"`
	Nombre            string      `json:"nombre"`
	NumeroSerie       null.String `json:"numeroSerie"`
	CategoriaNombre   string      `json:"categoriaNombre"`
	EstadoDescripcion string      `json:"estadoDescripcion"`
	PersonaAsignada   null.String `json:"personaAsignada"`
}

type OficinaListDTO struct {
	ID                      uint64      `json:"id"`
	Numero                  int         `json:"numero"`
	Departamento            null.String `json:"departamento"`
	CantidadPersonas        int         `json:"cantidadPersonas"`
	CantidadMateriales      int         `json:"cantidadMateriales"`
	TienePersonasAsignadas  bool        `json:"tienePersonasAsignadas"`
	TieneMaterialesUbicados bool        `json:"tieneMaterialesUbicados"`
	DescripcionCompleta     string      `json:"descripcionCompleta"`
}

type OficinaFilterDTO struct {
	SearchTerm    string
	HasPersonas   *bool
	HasMateriales *bool
}

type OficinaEstadisticasDTO struct {
	Total           int64            `json:"total"`
	PorDepartamento map[string]int64 `json:"porDepartamento"`
	ConPersonas     int64            `json:"conPersonas"`
	SinPersonas     int64            `json:"sinPersonas"`
	ConMateriales   int64            `json:"conMateriales"`
	SinMateriales   int64            `json:"sinMateriales"`
}

type DisponibilidadDTO struct {
	Disponible bool `json:"disponible"`
}
