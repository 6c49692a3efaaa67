package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/pkg/api"
	apperrors "inventory-system/pkg/errors"
)

const internalErrorMessage = "Error interno del servidor"

var sentinelStatus = []struct {
	err  error
	code int
}{
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrConflict, http.StatusConflict},
	{apperrors.ErrValidation, http.StatusBadRequest},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
	{apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrInvalidSigningMethod, http.StatusUnauthorized},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrForbidden, http.StatusForbidden},
}

// ErrorResponse writes err as the JSON error envelope. Anything that is not a
// known application error is logged and reported as a generic 500.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		} else if httpErr.Err != nil {
			logger.Debug("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
		return api.Failure(c, httpErr.Code, httpErr.Message, httpErr.Details)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make(map[string]string, len(validationErrors))
		for _, fe := range validationErrors {
			details[fe.Field()] = fmt.Sprintf("no cumple la regla '%s'", fe.Tag())
		}
		return api.Failure(c, http.StatusBadRequest, apperrors.ErrValidation.Error(), details)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code < http.StatusInternalServerError {
		return api.Failure(c, echoErr.Code, fmt.Sprint(echoErr.Message), nil)
	}

	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return api.Failure(c, s.code, s.err.Error(), nil)
		}
	}

	logger.Error("Unexpected Error",
		zap.String("method", c.Request().Method),
		zap.String("uri", c.Request().RequestURI),
		zap.Error(err),
	)
	return api.Failure(c, http.StatusInternalServerError, internalErrorMessage, nil)
}

func BadRequest(message string, err error) *apperrors.HttpError {
	return apperrors.NewHttpError(http.StatusBadRequest, message, err, nil)
}
