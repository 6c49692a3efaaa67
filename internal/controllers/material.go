package controllers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	"inventory-system/pkg/api"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/middleware"
	"inventory-system/pkg/utils"
)

type MaterialController struct {
	service services.MaterialServiceInterface
	timeout time.Duration
	logger  *zap.Logger
}

func NewMaterialController(service services.MaterialServiceInterface, timeout time.Duration, logger *zap.Logger) *MaterialController {
	return &MaterialController{service: service, timeout: timeout, logger: logger}
}

func parseMaterialFilter(query url.Values) (dto.MaterialFilterDTO, error) {
	filter := dto.MaterialFilterDTO{SearchTerm: strings.TrimSpace(query.Get("searchTerm"))}

	var err error
	if filter.CategoriaID, err = utils.ParseOptionalUint64(query, "categoriaId"); err != nil {
		return filter, queryParamError("categoriaId", err)
	}
	if filter.OficinaID, err = utils.ParseOptionalUint64(query, "oficinaId"); err != nil {
		return filter, queryParamError("oficinaId", err)
	}
	if filter.PersonaID, err = utils.ParseOptionalUint64(query, "personaId"); err != nil {
		return filter, queryParamError("personaId", err)
	}

	raw, err := utils.ParseOptionalInt16(query, "estado")
	if err != nil {
		return filter, queryParamError("estado", err)
	}
	if raw != nil {
		estado := constants.EstadoMaterial(*raw)
		if !estado.Valid() {
			return filter, apperrors.FieldError("estado", "El estado especificado no es válido")
		}
		filter.Estado = &estado
	}
	return filter, nil
}

// registrant prefers the authenticated persona over the id sent in the body.
func registrant(ctx echo.Context, fromBody uint64) uint64 {
	if id, ok := middleware.PersonaIDFromContext(ctx.Request().Context()); ok {
		return id
	}
	return fromBody
}

func (c *MaterialController) GetAll(ctx echo.Context) error {
	query := ctx.QueryParams()
	page := utils.ParsePageRequest(query)

	filter, err := parseMaterialFilter(query)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.GetAll(reqCtx, filter, page)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if len(result.Items) == 0 {
		return utils.ErrorResponse(ctx, apperrors.NewNotFoundError("No se encontraron materiales"), c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Lista de materiales obtenida", result)
}

func (c *MaterialController) GetByID(ctx echo.Context) error {
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
	return api.SuccessOne(ctx, http.StatusOK, "Material encontrado", result)
}

func (c *MaterialController) Create(ctx echo.Context) error {
	var payload dto.CreateMaterialDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.Create(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.Created(ctx, resourceLocation("materiales", result.ID), "Material creado", result)
}

func (c *MaterialController) Update(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateMaterialDTO
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
	return api.SuccessOne(ctx, http.StatusOK, "Material actualizado", result)
}

func (c *MaterialController) Delete(ctx echo.Context) error {
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

func (c *MaterialController) Asignar(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AsignarMaterialDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.Assign(reqCtx, id, payload, registrant(ctx, payload.UsuarioRegistroID.Uint64))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Material asignado", result)
}

func (c *MaterialController) Desasignar(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.DesasignarMaterialDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.Unassign(reqCtx, id, payload, registrant(ctx, payload.UsuarioRegistroID.Uint64))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Material desasignado", result)
}

func (c *MaterialController) Historial(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, cancel := utils.Ctx(ctx, c.timeout)
	defer cancel()

	result, err := c.service.Historial(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Historial de asignaciones", result)
}
