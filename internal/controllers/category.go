package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	"inventory-system/pkg/api"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type CategoryController struct {
	service services.CategoryServiceInterface
	timeout time.Duration
	logger  *zap.Logger
}

func NewCategoryController(service services.CategoryServiceInterface, timeout time.Duration, logger *zap.Logger) *CategoryController {
	return &CategoryController{service: service, timeout: timeout, logger: logger}
}

func (c *CategoryController) GetAll(ctx echo.Context) error {
	query := ctx.QueryParams()
	page := utils.ParsePageRequest(query)

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.GetAll(reqCtx, strings.TrimSpace(query.Get("searchTerm")), page)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if len(result.Items) == 0 {
		return utils.ErrorResponse(ctx, apperrors.NewNotFoundError("No se encontraron categorías"), c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Lista de categorías obtenida", result)
}

func (c *CategoryController) GetByID(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.GetByID(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Categoría encontrada", result)
}

func (c *CategoryController) Create(ctx echo.Context) error {
	var payload dto.CreateCategoriaDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.Create(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.Created(ctx, resourceLocation("categorias", result.ID), "Categoría creada", result)
}

func (c *CategoryController) Update(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateCategoriaDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := checkBodyID(id, payload.ID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.Update(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Categoría actualizada", result)
}

func (c *CategoryController) Delete(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	if err := c.service.Delete(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.NoContent(ctx)
}
