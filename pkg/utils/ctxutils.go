package utils

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Ctx derives the per-request database context. The caller must call cancel.
func Ctx(c echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request().Context())
	}
	return context.WithTimeout(c.Request().Context(), timeout)
}

func ParseIDParam(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
