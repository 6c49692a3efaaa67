package constants

// EstadoMaterial is the lifecycle state of a material. The numeric values are
// the stored representation.
type EstadoMaterial int16

const (
	EstadoDisponible      EstadoMaterial = 0
	EstadoAsignado        EstadoMaterial = 1
	EstadoEnMantenimiento EstadoMaterial = 2
	EstadoDanado          EstadoMaterial = 3
	EstadoDadoDeBaja      EstadoMaterial = 4
)

var EstadoMaterialNames = map[EstadoMaterial]string{
	EstadoDisponible:      "Disponible",
	EstadoAsignado:        "Asignado",
	EstadoEnMantenimiento: "EnMantenimiento",
	EstadoDanado:          "Dañado",
	EstadoDadoDeBaja:      "DadoDeBaja",
}

func (e EstadoMaterial) Valid() bool {
	_, ok := EstadoMaterialNames[e]
	return ok
}

func (e EstadoMaterial) String() string {
	if name, ok := EstadoMaterialNames[e]; ok {
		return name
	}
	return "Desconocido"
}

// Terminal states can not be left through the API.
func (e EstadoMaterial) Terminal() bool {
	return e == EstadoDadoDeBaja
}

// CanBeAssigned reports whether a material in this state may be handed to a person.
func (e EstadoMaterial) CanBeAssigned() bool {
	return e == EstadoDisponible
}
