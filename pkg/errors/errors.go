package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT
	ErrInvalidSigningMethod = fmt.Errorf("método de firma del token no válido")
	ErrInvalidToken         = fmt.Errorf("token no válido")
	ErrTokenExpired         = fmt.Errorf("el token ha expirado")

	// Auth
	ErrEmptyAuthHeader   = fmt.Errorf("falta el encabezado Authorization")
	ErrInvalidAuthHeader = fmt.Errorf("formato del encabezado Authorization no válido")
	ErrUnauthorized      = fmt.Errorf("no autorizado")
	ErrForbidden         = fmt.Errorf("acceso denegado")

	// General
	ErrNotFound   = fmt.Errorf("registro no encontrado")
	ErrConflict   = fmt.Errorf("conflicto con el estado actual del recurso")
	ErrValidation = fmt.Errorf("datos de entrada no válidos")
	ErrBadRequest = fmt.Errorf("solicitud incorrecta")
)

// HttpError carries the status code and user-facing message for a failure.
// Err holds the internal cause and is only logged, never sent to the client.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

// NewNotFoundError wraps ErrNotFound so errors.Is keeps working upstream.
func NewNotFoundError(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...), Err: ErrNotFound}
}

func NewConflictError(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusConflict, Message: fmt.Sprintf(format, args...), Err: ErrConflict}
}

// NewValidationError builds a 400 with field -> message details.
func NewValidationError(details map[string]string) *HttpError {
	msg := ErrValidation.Error()
	if len(details) == 1 {
		for field, m := range details {
			msg = fmt.Sprintf("%s: %s", field, m)
		}
	}
	return &HttpError{Code: http.StatusBadRequest, Message: msg, Err: ErrValidation, Details: details}
}

// FieldError is shorthand for a single-field validation failure.
func FieldError(field, message string) *HttpError {
	return NewValidationError(map[string]string{field: message})
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
