package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runOfficeRouter(api *echo.Group, ctrl *controllers.OfficeController, guards []echo.MiddlewareFunc) {
	api.GET("/oficinas", ctrl.GetAll)
	api.GET("/oficinas/estadisticas", ctrl.Estadisticas)
	api.GET("/oficinas/disponible", ctrl.Disponible)
	api.GET("/oficinas/:id", ctrl.GetByID)
	api.POST("/oficinas", ctrl.Create, guards...)
	api.PUT("/oficinas/:id", ctrl.Update, guards...)
	api.DELETE("/oficinas/:id", ctrl.Delete, guards...)
}
