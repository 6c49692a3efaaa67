package seeders

import "inventory-system/pkg/constants"

var categoriasData = []string{
	"Computadoras",
	"Monitores",
	"Impresoras",
	"Telefonía",
	"Redes",
	"Mobiliario",
	"Herramientas",
	"Vehículos",
	"Comunicaciones",
	"Otros",
}

var oficinasData = []struct {
	Numero       int
	Departamento string
}{
	{Numero: 1, Departamento: "Dirección"},
	{Numero: 2, Departamento: "Administración"},
	{Numero: 3, Departamento: "Logística"},
	{Numero: 4, Departamento: "Informática"},
	{Numero: 5, Departamento: "Personal"},
}

type adminData struct {
	Nombre        string
	Apellido      string
	NombreUsuario string
	Jerarquia     constants.Jerarquia
	Rol           constants.RolUsuario
	OficinaNumero int
}

func defaultAdmin(username string) adminData {
	return adminData{
		Nombre:        "Administrador",
		Apellido:      "Sistema",
		NombreUsuario: username,
		Jerarquia:     constants.JerarquiaAgenteCivil,
		Rol:           constants.RolUsuarioAdministrador,
		OficinaNumero: 4,
	}
}
