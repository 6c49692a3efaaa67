package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Body    T      `json:"body,omitempty"`
}

// SuccessOne returns a single object.
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Response[T]{
		Status:  true,
		Message: message,
		Body:    data,
	})
}

// Created answers 201 with a Location header pointing at the new resource.
func Created[T any](c echo.Context, location string, message string, data T) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return SuccessOne(c, http.StatusCreated, message, data)
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func Failure(c echo.Context, code int, message string, details interface{}) error {
	return c.JSON(code, Response[interface{}]{
		Status:  false,
		Message: message,
		Body:    details,
	})
}
