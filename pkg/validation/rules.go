package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"inventory-system/pkg/constants"
)

var (
	lettersRegex      = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s]+$`)
	departamentoRegex = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s\-.]+$`)
	usernameRegex     = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("jerarquia", isJerarquia); err != nil {
		return err
	}
	if err := v.RegisterValidation("rol_usuario", isRolUsuario); err != nil {
		return err
	}
	if err := v.RegisterValidation("estado_material", isEstadoMaterial); err != nil {
		return err
	}
	if err := v.RegisterValidation("nombre_categoria", isLettersOnly); err != nil {
		return err
	}
	if err := v.RegisterValidation("nombre_persona", isLettersOnly); err != nil {
		return err
	}
	if err := v.RegisterValidation("departamento", isDepartamento); err != nil {
		return err
	}
	if err := v.RegisterValidation("nombre_usuario", isUsername); err != nil {
		return err
	}
	return nil
}

func isJerarquia(fl validator.FieldLevel) bool {
	return constants.Jerarquia(fl.Field().Int()).Valid()
}

func isRolUsuario(fl validator.FieldLevel) bool {
	return constants.RolUsuario(fl.Field().Int()).Valid()
}

func isEstadoMaterial(fl validator.FieldLevel) bool {
	return constants.EstadoMaterial(fl.Field().Int()).Valid()
}

// isLettersOnly allows letters (Spanish accents included) and spaces.
func isLettersOnly(fl validator.FieldLevel) bool {
	return lettersRegex.MatchString(fl.Field().String())
}

func isDepartamento(fl validator.FieldLevel) bool {
	return departamentoRegex.MatchString(fl.Field().String())
}

func isUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}
