package services

import (
	"net/http"

	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
)

const genericConflictMessage = "La operación entra en conflicto con registros relacionados"

// constraintMessages gives the user-facing message for every named
// constraint the schema declares.
var constraintMessages = map[string]string{
	repositories.ConstraintOfficeNumero:           "Ya existe una oficina con ese número",
	repositories.ConstraintPersonaNombreUsuario:   "Ya existe una persona con ese nombre de usuario",
	repositories.ConstraintCategoryNombre:         "Ya existe una categoría con ese nombre",
	repositories.ConstraintHistoryOpen:            "El material ya tiene una asignación abierta",
	repositories.ConstraintPersonaOficina:         "La oficina está referenciada por personas",
	repositories.ConstraintMaterialOficina:        "La oficina está referenciada por materiales",
	repositories.ConstraintMaterialCategoria:      "La categoría está referenciada por materiales",
	repositories.ConstraintMaterialPersona:        "La persona tiene materiales asignados",
	repositories.ConstraintHistoryOficina:         "La oficina está referenciada por el historial de asignaciones",
	repositories.ConstraintHistoryUsuarioRegistro: "La persona figura como registrante en el historial de asignaciones",
}

// translate turns a constraint violation raised by the database into a 409
// with a readable message. Other errors pass through untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}
	constraint := repositories.ViolatedConstraint(err)
	if constraint == "" {
		return err
	}
	msg, ok := constraintMessages[constraint]
	if !ok {
		msg = genericConflictMessage
	}
	return apperrors.NewHttpError(http.StatusConflict, msg, err, map[string]interface{}{"constraint": constraint})
}
