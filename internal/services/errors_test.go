package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/internal/repositories"
)

func TestTranslate_HistoryConstraints(t *testing.T) {
	httpErr := requireHTTPCode(t, translate(violation("delete oficina", repositories.ConstraintHistoryOficina)), http.StatusConflict)
	assert.Equal(t, "La oficina está referenciada por el historial de asignaciones", httpErr.Message)

	httpErr = requireHTTPCode(t, translate(violation("delete persona", repositories.ConstraintHistoryUsuarioRegistro)), http.StatusConflict)
	assert.Equal(t, "La persona figura como registrante en el historial de asignaciones", httpErr.Message)
}

func TestTranslate_UnknownConstraintAndPassThrough(t *testing.T) {
	httpErr := requireHTTPCode(t, translate(violation("insert", "fk_desconocida")), http.StatusConflict)
	assert.Equal(t, genericConflictMessage, httpErr.Message)

	plain := errors.New("boom")
	require.ErrorIs(t, translate(plain), plain)
	assert.NoError(t, translate(nil))
}
