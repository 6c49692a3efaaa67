package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runMaterialRouter(api *echo.Group, ctrl *controllers.MaterialController, guards []echo.MiddlewareFunc) {
	api.GET("/materiales", ctrl.GetAll)
	api.GET("/materiales/:id", ctrl.GetByID)
	api.GET("/materiales/:id/historial", ctrl.Historial)
	api.POST("/materiales", ctrl.Create, guards...)
	api.PUT("/materiales/:id", ctrl.Update, guards...)
	api.DELETE("/materiales/:id", ctrl.Delete, guards...)
	api.POST("/materiales/:id/asignar", ctrl.Asignar, guards...)
	api.POST("/materiales/:id/desasignar", ctrl.Desasignar, guards...)
}
