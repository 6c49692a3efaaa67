package dto

import "time"

type CreateCategoriaDTO struct {
	Nombre string `json:"nombre" validate:"required,max=100,nombre_categoria"`
}

type UpdateCategoriaDTO struct {
	ID     uint64 `json:"id" validate:"required,gt=0"`
	Nombre string `json:"nombre" validate:"required,max=100,nombre_categoria"`
}

type CategoriaDTO struct {
	ID                 uint64    `json:"id"`
	Nombre             string    `json:"nombre"`
	CantidadMateriales int       `json:"cantidadMateriales"`
	FechaCreacion      time.Time `json:"fechaCreacion"`
}
