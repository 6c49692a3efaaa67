package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runCategoryRouter(api *echo.Group, ctrl *controllers.CategoryController, guards []echo.MiddlewareFunc) {
	api.GET("/categorias", ctrl.GetAll)
	api.GET("/categorias/:id", ctrl.GetByID)
	api.POST("/categorias", ctrl.Create, guards...)
	api.PUT("/categorias/:id", ctrl.Update, guards...)
	api.DELETE("/categorias/:id", ctrl.Delete, guards...)
}
