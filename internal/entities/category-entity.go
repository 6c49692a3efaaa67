package entities

import "time"

type Category struct {
	ID                uint64     `db:"id"`
	Nombre            string     `db:"nombre"`
	FechaCreacion     time.Time  `db:"fecha_creacion"`
	FechaModificacion *time.Time `db:"fecha_modificacion"`
}
