package entities

import (
	"time"

	"inventory-system/pkg/constants"
)

type Persona struct {
	ID            uint64               `db:"id"`
	Nombre        string               `db:"nombre"`
	Apellido      string               `db:"apellido"`
	Jerarquia     constants.Jerarquia  `db:"jerarquia"`
	NombreUsuario string               `db:"nombre_usuario"`
	Rol           constants.RolUsuario `db:"rol"`
	OficinaID     *uint64              `db:"oficina_id"`
	CreatedAt     *time.Time           `db:"created_at"`
	UpdatedAt     *time.Time           `db:"updated_at"`

	Oficina *Office `db:"-"`
}

func (p Persona) NombreCompleto() string {
	return p.Nombre + " " + p.Apellido
}
