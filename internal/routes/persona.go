package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runPersonaRouter(api *echo.Group, ctrl *controllers.PersonaController, guards []echo.MiddlewareFunc) {
	api.GET("/personas", ctrl.GetAll)
	api.GET("/personas/estadisticas", ctrl.Estadisticas)
	api.GET("/personas/disponible", ctrl.Disponible)
	api.GET("/personas/:id", ctrl.GetByID)
	api.POST("/personas", ctrl.Create, guards...)
	api.PUT("/personas/:id", ctrl.Update, guards...)
	api.DELETE("/personas/:id", ctrl.Delete, guards...)
}
