package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runReportRouter(api *echo.Group, ctrl *controllers.ReportController) {
	api.GET("/materiales/export", ctrl.ExportMateriales)
}
