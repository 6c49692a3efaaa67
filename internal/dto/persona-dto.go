package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"inventory-system/pkg/constants"
)

type CreatePersonaDTO struct {
	Nombre        string               `json:"nombre" validate:"required,max=100,nombre_persona"`
	Apellido      string               `json:"apellido" validate:"required,max=100,nombre_persona"`
	Jerarquia     constants.Jerarquia  `json:"jerarquia" validate:"jerarquia"`
	NombreUsuario string               `json:"nombreUsuario" validate:"required,min=3,max=50,nombre_usuario"`
	Rol           constants.RolUsuario `json:"rol" validate:"rol_usuario"`
	OficinaID     null.Uint64          `json:"oficinaId" validate:"omitempty,gt=0"`
}

type UpdatePersonaDTO struct {
	ID            uint64               `json:"id" validate:"required,gt=0"`
	Nombre        string               `json:"nombre" validate:"required,max=100,nombre_persona"`
	Apellido      string               `json:"apellido" validate:"required,max=100,nombre_persona"`
	Jerarquia     constants.Jerarquia  `json:"jerarquia" validate:"jerarquia"`
	NombreUsuario string               `json:"nombreUsuario" validate:"required,min=3,max=50,nombre_usuario"`
	Rol           constants.RolUsuario `json:"rol" validate:"rol_usuario"`
	OficinaID     null.Uint64          `json:"oficinaId" validate:"omitempty,gt=0"`
}

type PersonaDTO struct {
	ID                    uint64               `json:"id"`
	Nombre                string               `json:"nombre"`
	Apellido              string               `json:"apellido"`
	NombreCompleto        string               `json:"nombreCompleto"`
	Jerarquia             constants.Jerarquia  `json:"jerarquia"`
	JerarquiaDescripcion  string               `json:"jerarquiaDescripcion"`
	NombreUsuario         string               `json:"nombreUsuario"`
	Rol                   constants.RolUsuario `json:"rol"`
	RolDescripcion        string               `json:"rolDescripcion"`
	OficinaID             null.Uint64          `json:"oficinaId"`
	OficinaNumero         null.Int             `json:"oficinaNumero"`
	OficinaDepartamento   null.String          `json:"oficinaDepartamento"`
	MaterialesAsignados   int                  `json:"materialesAsignados"`
	FechaUltimaAsignacion *time.Time           `json:"fechaUltimaAsignacion"`
}

type PersonaListDTO struct {
	ID                       uint64               `json:"id"`
	Nombre                   string               `json:"nombre"`
	Apellido                 string               `json:"apellido"`
	NombreCompleto           string               `json:"nombreCompleto"`
	Jerarquia                constants.Jerarquia  `json:"jerarquia"`
	JerarquiaDescripcion     string               `json:"jerarquiaDescripcion"`
	NombreUsuario            string               `json:"nombreUsuario"`
	Rol                      constants.RolUsuario `json:"rol"`
	RolDescripcion           string               `json:"rolDescripcion"`
	OficinaID                null.Uint64          `json:"oficinaId"`
	OficinaNumero            null.Int             `json:"oficinaNumero"`
	MaterialesAsignados      int                  `json:"materialesAsignados"`
	TieneMaterialesAsignados bool                 `json:"tieneMaterialesAsignados"`
}

type PersonaFilterDTO struct {
	SearchTerm string
	OficinaID  *uint64
	Rol        *constants.RolUsuario
	Jerarquia  *constants.Jerarquia
}

type PersonaEstadisticasDTO struct {
	Total        int64            `json:"total"`
	PorRol       map[string]int64 `json:"porRol"`
	PorJerarquia map[string]int64 `json:"porJerarquia"`
	PorOficina   map[string]int64 `json:"porOficina"`
	SinOficina   int64            `json:"sinOficina"`
}
