package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "inventory-system/pkg/errors"
)

type failureBody struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Body    map[string]string `json:"body"`
}

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, failureBody) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/materiales/1", nil), rec)

	require.NoError(t, ErrorResponse(c, err, zap.NewNop()))

	var body failureBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Status)
	return rec, body
}

func TestErrorResponse_HttpError(t *testing.T) {
	rec, body := respond(t, apperrors.NewConflictError("El material ya está asignado"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "El material ya está asignado", body.Message)
}

func TestErrorResponse_FieldErrorKeepsDetails(t *testing.T) {
	rec, body := respond(t, fmt.Errorf("wrapped: %w", apperrors.FieldError("personaId", "no existe")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]string{"personaId": "no existe"}, body.Body)
}

func TestErrorResponse_ValidationErrors(t *testing.T) {
	err := validator.New().Struct(struct {
		Nombre string `validate:"required"`
	}{})
	require.Error(t, err)

	rec, body := respond(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body.Body, "Nombre")
}

func TestErrorResponse_Sentinels(t *testing.T) {
	rec, body := respond(t, fmt.Errorf("select persona: %w", apperrors.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.ErrNotFound.Error(), body.Message)
	assert.NotContains(t, body.Message, "select persona")

	rec, _ = respond(t, apperrors.ErrForbidden)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = respond(t, apperrors.ErrTokenExpired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestErrorResponse_EchoHTTPError(t *testing.T) {
	rec, body := respond(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", body.Message)
}

func TestErrorResponse_UnknownIsInternal(t *testing.T) {
	rec, body := respond(t, errors.New("connection reset by peer"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, internalErrorMessage, body.Message)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
