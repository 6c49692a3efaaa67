package controllers

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"inventory-system/pkg/utils"
)

func parseID(ctx echo.Context) (uint64, error) {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil || id == 0 {
		httpErr := utils.BadRequest("Formato de ID no válido", err)
		httpErr.Context = map[string]interface{}{"id": ctx.Param("id")}
		return 0, httpErr
	}
	return id, nil
}

// bindAndValidate decodes the JSON body into dst and runs the struct rules.
func bindAndValidate(ctx echo.Context, dst interface{}) error {
	if err := ctx.Bind(dst); err != nil {
		return utils.BadRequest("Datos de entrada no válidos", err)
	}
	if err := ctx.Validate(dst); err != nil {
		return err
	}
	return nil
}

func checkBodyID(pathID, bodyID uint64) error {
	if pathID != bodyID {
		return utils.BadRequest(fmt.Sprintf("El ID de la URL (%d) no coincide con el ID del cuerpo (%d)", pathID, bodyID), nil)
	}
	return nil
}

func queryParamError(name string, err error) error {
	return utils.BadRequest(fmt.Sprintf("Parámetro '%s' no válido", name), err)
}

func resourceLocation(resource string, id uint64) string {
	return fmt.Sprintf("/api/%s/%d", resource, id)
}
