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
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type PersonaController struct {
	service services.PersonaServiceInterface
	timeout time.Duration
	logger  *zap.Logger
}

func NewPersonaController(service services.PersonaServiceInterface, timeout time.Duration, logger *zap.Logger) *PersonaController {
	return &PersonaController{service: service, timeout: timeout, logger: logger}
}

func (c *PersonaController) GetAll(ctx echo.Context) error {
	query := ctx.QueryParams()
	page := utils.ParsePageRequest(query)

	oficinaID, err := utils.ParseOptionalUint64(query, "oficinaId")
	if err != nil {
		return utils.ErrorResponse(ctx, queryParamError("oficinaId", err), c.logger)
	}
	rolRaw, err := utils.ParseOptionalInt16(query, "rol")
	if err != nil {
		return utils.ErrorResponse(ctx, queryParamError("rol", err), c.logger)
	}
	jerarquiaRaw, err := utils.ParseOptionalInt16(query, "jerarquia")
	if err != nil {
		return utils.ErrorResponse(ctx, queryParamError("jerarquia", err), c.logger)
	}

	filter := dto.PersonaFilterDTO{
		SearchTerm: strings.TrimSpace(query.Get("searchTerm")),
		OficinaID:  oficinaID,
	}
	if rolRaw != nil {
		rol := constants.RolUsuario(*rolRaw)
		if !rol.Valid() {
			return utils.ErrorResponse(ctx, apperrors.FieldError("rol", "El rol especificado no es válido"), c.logger)
		}
		filter.Rol = &rol
	}
	if jerarquiaRaw != nil {
		jerarquia := constants.Jerarquia(*jerarquiaRaw)
		if !jerarquia.Valid() {
			return utils.ErrorResponse(ctx, apperrors.FieldError("jerarquia", "La jerarquía especificada no es válida"), c.logger)
		}
		filter.Jerarquia = &jerarquia
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.GetAll(reqCtx, filter, page)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if len(result.Items) == 0 {
		return utils.ErrorResponse(ctx, apperrors.NewNotFoundError("No se encontraron personas"), c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Lista de personas obtenida", result)
}

func (c *PersonaController) GetByID(ctx echo.Context) error {
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
	return api.SuccessOne(ctx, http.StatusOK, "Persona encontrada", result)
}

func (c *PersonaController) Create(ctx echo.Context) error {
	var payload dto.CreatePersonaDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.Create(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.Created(ctx, resourceLocation("personas", result.ID), "Persona creada", result)
}

func (c *PersonaController) Update(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdatePersonaDTO
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
	return api.SuccessOne(ctx, http.StatusOK, "Persona actualizada", result)
}

func (c *PersonaController) Delete(ctx echo.Context) error {
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

func (c *PersonaController) Disponible(ctx echo.Context) error {
	query := ctx.QueryParams()
	nombreUsuario := strings.TrimSpace(query.Get("nombreUsuario"))
	if nombreUsuario == "" {
		return utils.ErrorResponse(ctx, apperrors.FieldError("nombreUsuario", "El nombre de usuario es requerido"), c.logger)
	}
	excludeID, err := utils.ParseOptionalUint64(query, "excludeId")
	if err != nil {
		return utils.ErrorResponse(ctx, queryParamError("excludeId", err), c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	ok, err := c.service.NombreUsuarioDisponible(reqCtx, nombreUsuario, excludeID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Disponibilidad verificada", dto.DisponibilidadDTO{Disponible: ok})
}

func (c *PersonaController) Estadisticas(ctx echo.Context) error {
	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.Estadisticas(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Estadísticas de personas", result)
}
