package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	service services.ReportServiceInterface
	timeout time.Duration
	logger  *zap.Logger
}

func NewReportController(service services.ReportServiceInterface, timeout time.Duration, logger *zap.Logger) *ReportController {
	return &ReportController{service: service, timeout: timeout, logger: logger}
}

// ExportMateriales streams the filtered inventory as an xlsx attachment.
func (c *ReportController) ExportMateriales(ctx echo.Context) error {
	filter, err := parseMaterialFilter(ctx.QueryParams())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	file, err := c.service.ExportMateriales(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer func() {
		if err := file.Close(); err != nil {
			c.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	filename := fmt.Sprintf("inventario_%s.xlsx", time.Now().Format("20060102_150405"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Response().WriteHeader(http.StatusOK)
	if _, err := file.WriteTo(ctx.Response()); err != nil {
		c.logger.Error("Failed to write workbook", zap.Error(err))
		return err
	}
	return nil
}
