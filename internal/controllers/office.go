package controllers

import (
	"net/http"
	"strconv"
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

type OfficeController struct {
	service services.OfficeServiceInterface
	timeout time.Duration
	logger  *zap.Logger
}

func NewOfficeController(service services.OfficeServiceInterface, timeout time.Duration, logger *zap.Logger) *OfficeController {
	return &OfficeController{service: service, timeout: timeout, logger: logger}
}

func (c *OfficeController) GetAll(ctx echo.Context) error {
	query := ctx.QueryParams()
	page := utils.ParsePageRequest(query)

	hasPersonas, err := utils.ParseOptionalBool(query, "hasPersonas")
	if err != nil {
		return utils.ErrorResponse(ctx, queryParamError("hasPersonas", err), c.logger)
	}
	hasMateriales, err := utils.ParseOptionalBool(query, "hasMateriales")
	if err != nil {
		return utils.ErrorResponse(ctx, queryParamError("hasMateriales", err), c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.GetAll(reqCtx, dto.OficinaFilterDTO{
		SearchTerm:    strings.TrimSpace(query.Get("searchTerm")),
		HasPersonas:   hasPersonas,
		HasMateriales: hasMateriales,
	}, page)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if len(result.Items) == 0 {
		return utils.ErrorResponse(ctx, apperrors.NewNotFoundError("No se encontraron oficinas"), c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Lista de oficinas obtenida", result)
}

func (c *OfficeController) GetByID(ctx echo.Context) error {
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
	return api.SuccessOne(ctx, http.StatusOK, "Oficina encontrada", result)
}

func (c *OfficeController) Create(ctx echo.Context) error {
	var payload dto.CreateOficinaDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.Create(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.Created(ctx, resourceLocation("oficinas", result.ID), "Oficina creada", result)
}

func (c *OfficeController) Update(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateOficinaDTO
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
	return api.SuccessOne(ctx, http.StatusOK, "Oficina actualizada", result)
}

func (c *OfficeController) Delete(ctx echo.Context) error {
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

// Disponible answers whether an office number is free, optionally ignoring
// the office being edited.
func (c *OfficeController) Disponible(ctx echo.Context) error {
	query := ctx.QueryParams()
	numero, err := strconv.Atoi(strings.TrimSpace(query.Get("numero")))
	if err != nil {
		return utils.ErrorResponse(ctx, queryParamError("numero", err), c.logger)
	}
	excludeID, err := utils.ParseOptionalUint64(query, "excludeId")
	if err != nil {
		return utils.ErrorResponse(ctx, queryParamError("excludeId", err), c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	ok, err := c.service.NumeroDisponible(reqCtx, numero, excludeID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Disponibilidad verificada", dto.DisponibilidadDTO{Disponible: ok})
}

func (c *OfficeController) Estadisticas(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.Estadisticas(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Estadísticas de oficinas", result)
}
