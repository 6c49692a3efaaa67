package entities

import "time"

type Office struct {
	ID           uint64     `db:"id"`
	Numero       int        `db:"numero"`
	Departamento *string    `db:"departamento"`
	CreatedAt    *time.Time `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`

	// Loaded by OfficeRepository.FindByIDWithPersonas, not a column.
	Personas []PersonaWithCount `db:"-"`
}

// PersonaWithCount is a person row enriched with the number of materials
// currently assigned to them.
type PersonaWithCount struct {
	Persona
	MaterialesAsignados int `db:"materiales_asignados"`
}
