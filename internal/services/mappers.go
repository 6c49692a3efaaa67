package services

import (
	"fmt"
	"time"

	"github.com/aarondl/null/v8"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	"inventory-system/pkg/utils"
)

func toOficinaDTO(office *entities.Office, materiales []entities.Material) *dto.OficinaDTO {
	out := &dto.OficinaDTO{
		ID:                 office.ID,
		Numero:             office.Numero,
		Departamento:       null.StringFromPtr(office.Departamento),
		PersonasAsignadas:  make([]dto.PersonaOficinaDTO, 0, len(office.Personas)),
		MaterialesUbicados: make([]dto.MaterialOficinaDTO, 0, len(materiales)),
	}
	for _, p := range office.Personas {
		out.PersonasAsignadas = append(out.PersonasAsignadas, dto.PersonaOficinaDTO{
			ID:                   p.ID,
			NombreCompleto:       p.NombreCompleto(),
			JerarquiaDescripcion: p.Jerarquia.String(),
			MaterialesAsignados:  p.MaterialesAsignados,
		})
	}
	for _, m := range materiales {
		out.MaterialesUbicados = append(out.MaterialesUbicados, dto.MaterialOficinaDTO{
			ID:                m.ID,
			Nombre:            m.Nombre,
			NumeroSerie:       null.StringFromPtr(m.NumeroSerie),
			CategoriaNombre:   m.CategoriaNombre,
			EstadoDescripcion: m.Estado.String(),
			PersonaAsignada:   personaAsignada(m),
		})
	}
	out.CantidadPersonas = len(out.PersonasAsignadas)
	out.CantidadMateriales = len(out.MaterialesUbicados)
	return out
}

func toOficinaListDTO(item repositories.OfficeListItem) dto.OficinaListDTO {
	return dto.OficinaListDTO{
		ID:                      item.ID,
		Numero:                  item.Numero,
		Departamento:            null.StringFromPtr(item.Departamento),
		CantidadPersonas:        item.CantidadPersonas,
		CantidadMateriales:      item.CantidadMateriales,
		TienePersonasAsignadas:  item.CantidadPersonas > 0,
		TieneMaterialesUbicados: item.CantidadMateriales > 0,
		DescripcionCompleta:     descripcionOficina(item.Numero, item.Departamento),
	}
}

func descripcionOficina(numero int, departamento *string) string {
	if departamento != nil && *departamento != "" {
		return fmt.Sprintf("Oficina %d - %s", numero, *departamento)
	}
	return fmt.Sprintf("Oficina %d", numero)
}

func toPersonaDTO(p *entities.Persona, materiales int64, ultima *time.Time) *dto.PersonaDTO {
	out := &dto.PersonaDTO{
		ID:                    p.ID,
		Nombre:                p.Nombre,
		Apellido:              p.Apellido,
		NombreCompleto:        p.NombreCompleto(),
		Jerarquia:             p.Jerarquia,
		JerarquiaDescripcion:  p.Jerarquia.String(),
		NombreUsuario:         p.NombreUsuario,
		Rol:                   p.Rol,
		RolDescripcion:        p.Rol.String(),
		OficinaID:             null.Uint64FromPtr(p.OficinaID),
		MaterialesAsignados:   int(materiales),
		FechaUltimaAsignacion: ultima,
	}
	if p.Oficina != nil {
		out.OficinaNumero = null.IntFrom(p.Oficina.Numero)
		out.OficinaDepartamento = null.StringFromPtr(p.Oficina.Departamento)
	}
	return out
}

func toPersonaListDTO(item repositories.PersonaListItem) dto.PersonaListDTO {
	return dto.PersonaListDTO{
		ID:                       item.ID,
		Nombre:                   item.Nombre,
		Apellido:                 item.Apellido,
		NombreCompleto:           item.NombreCompleto(),
		Jerarquia:                item.Jerarquia,
		JerarquiaDescripcion:     item.Jerarquia.String(),
		NombreUsuario:            item.NombreUsuario,
		Rol:                      item.Rol,
		RolDescripcion:           item.Rol.String(),
		OficinaID:                null.Uint64FromPtr(item.OficinaID),
		OficinaNumero:            null.IntFromPtr(item.OficinaNumero),
		MaterialesAsignados:      item.MaterialesAsignados,
		TieneMaterialesAsignados: item.MaterialesAsignados > 0,
	}
}

func toCategoriaDTO(c *entities.Category, materiales int) *dto.CategoriaDTO {
	return &dto.CategoriaDTO{
		ID:                 c.ID,
		Nombre:             c.Nombre,
		CantidadMateriales: materiales,
		FechaCreacion:      c.FechaCreacion,
	}
}

// toMaterialDTO maps a material and fills the computed fields relative to now.
func toMaterialDTO(m *entities.Material, now time.Time) *dto.MaterialDTO {
	out := &dto.MaterialDTO{
		ID:                      m.ID,
		Nombre:                  m.Nombre,
		Modelo:                  null.StringFromPtr(m.Modelo),
		NumeroSerie:             null.StringFromPtr(m.NumeroSerie),
		Descripcion:             null.StringFromPtr(m.Descripcion),
		Marca:                   null.StringFromPtr(m.Marca),
		FechaRegistroSistema:    m.FechaRegistroSistema,
		FechaAsignacion:         m.FechaAsignacion,
		Estado:                  m.Estado,
		EstadoDescripcion:       m.Estado.String(),
		Observaciones:           null.StringFromPtr(m.Observaciones),
		CategoriaID:             m.CategoriaID,
		CategoriaNombre:         m.CategoriaNombre,
		PersonaAsignadaID:       null.Uint64FromPtr(m.PersonaAsignadaID),
		PersonaAsignadaNombre:   null.StringFromPtr(m.PersonaAsignadaNombre),
		PersonaAsignadaApellido: null.StringFromPtr(m.PersonaAsignadaApellido),
		PersonaAsignadaCompleto: personaAsignada(*m),
		OficinaID:               m.OficinaID,
		OficinaNumero:           m.OficinaNumero,
		OficinaDepartamento:     null.StringFromPtr(m.OficinaDepartamento),
		NombreCompleto:          m.Nombre,
		EstaAsignado:            m.EstaAsignado(),
		DiasDesdeRegistro:       utils.DaysBetween(m.FechaRegistroSistema, now),
	}
	if m.CategoriaNombre != "" {
		out.NombreCompleto = m.CategoriaNombre + " - " + m.Nombre
	}
	if m.EstaAsignado() && m.FechaAsignacion != nil {
		out.DiasAsignado = null.IntFrom(utils.DaysBetween(*m.FechaAsignacion, now))
	}
	return out
}

func personaAsignada(m entities.Material) null.String {
	if m.PersonaAsignadaNombre == nil || m.PersonaAsignadaApellido == nil {
		return null.String{}
	}
	return null.StringFrom(*m.PersonaAsignadaNombre + " " + *m.PersonaAsignadaApellido)
}

func toHistorialDTO(e repositories.HistoryEntry) dto.AsignacionHistorialDTO {
	out := dto.AsignacionHistorialDTO{
		ID:                 e.ID,
		MaterialID:         e.MaterialID,
		PersonaID:          null.Uint64FromPtr(e.PersonaID),
		OficinaID:          e.OficinaID,
		OficinaNumero:      e.OficinaNumero,
		FechaAsignacion:    e.FechaAsignacion,
		FechaDesasignacion: e.FechaDesasignacion,
		Estado:             e.Estado,
		EstadoDescripcion:  e.Estado.String(),
		Motivo:             null.StringFromPtr(e.Motivo),
		Observaciones:      null.StringFromPtr(e.Observaciones),
		UsuarioRegistroID:  e.UsuarioRegistroID,
		UsuarioRegistro:    e.UsuarioRegistroNombre,
		FechaRegistro:      e.FechaRegistro,
	}
	if e.PersonaNombre != nil && e.PersonaApellido != nil {
		out.PersonaNombreCompleto = null.StringFrom(*e.PersonaNombre + " " + *e.PersonaApellido)
	}
	return out
}

func toOficinaEstadisticasDTO(s *repositories.OfficeStats) *dto.OficinaEstadisticasDTO {
	porDepartamento := make(map[string]int64, len(s.PorDepartamento))
	for dep, n := range s.PorDepartamento {
		if dep == "" {
			dep = "Sin departamento"
		}
		porDepartamento[dep] += n
	}
	return &dto.OficinaEstadisticasDTO{
		Total:           s.Total,
		PorDepartamento: porDepartamento,
		ConPersonas:     s.ConPersonas,
		SinPersonas:     s.SinPersonas,
		ConMateriales:   s.ConMateriales,
		SinMateriales:   s.SinMateriales,
	}
}

func toPersonaEstadisticasDTO(s *repositories.PersonaStats) *dto.PersonaEstadisticasDTO {
	out := &dto.PersonaEstadisticasDTO{
		Total:        s.Total,
		PorRol:       make(map[string]int64, len(s.PorRol)),
		PorJerarquia: make(map[string]int64, len(s.PorJerarquia)),
		PorOficina:   make(map[string]int64, len(s.PorOficina)),
		SinOficina:   s.SinOficina,
	}
	for rol, n := range s.PorRol {
		out.PorRol[rol.String()] = n
	}
	for j, n := range s.PorJerarquia {
		out.PorJerarquia[j.String()] = n
	}
	for numero, n := range s.PorOficina {
		out.PorOficina[fmt.Sprintf("Oficina %d", numero)] = n
	}
	return out
}

// optional converts a DTO null.String into the nullable column value.
// Blank strings are stored as NULL.
func optional(s null.String) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

func estadoOrDefault(e *constants.EstadoMaterial) constants.EstadoMaterial {
	if e == nil {
		return constants.EstadoDisponible
	}
	return *e
}

func officeFromCreate(d dto.CreateOficinaDTO) entities.Office {
	return entities.Office{
		Numero:       d.Numero,
		Departamento: optional(d.Departamento),
	}
}
