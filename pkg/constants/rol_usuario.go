package constants

type RolUsuario int16

const (
	RolUsuarioConsulta      RolUsuario = 0
	RolUsuarioOperador      RolUsuario = 1
	RolUsuarioAdministrador RolUsuario = 2
)

var RolUsuarioNames = map[RolUsuario]string{
	RolUsuarioConsulta:      "Consulta",
	RolUsuarioOperador:      "Operador",
	RolUsuarioAdministrador: "Administrador",
}

func (r RolUsuario) Valid() bool {
	_, ok := RolUsuarioNames[r]
	return ok
}

func (r RolUsuario) String() string {
	if name, ok := RolUsuarioNames[r]; ok {
		return name
	}
	return "Desconocido"
}

// CanWrite reports whether the role may mutate inventory data.
func (r RolUsuario) CanWrite() bool {
	return r == RolUsuarioOperador || r == RolUsuarioAdministrador
}
