package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"splitboard/app/server/auth"
	"splitboard/app/server/store"
	"splitboard/app/server/types"
)

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &types.ErrorMessage{
		Message: http.StatusText(statusCode),
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusNotAcceptable
	case errors.Is(err, store.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail 把业务错误转换为对应的状态码，未知错误记录日志后返回 500
func (a *App) fail(c echo.Context, err error, fields ...zap.Field) error {
	statusCode := statusOf(err)
	if statusCode == http.StatusInternalServerError {
		a.l.Error("request failed", append(fields, zap.String("path", c.Path()), zap.Error(err))...)
		return a.er(c, statusCode)
	}

	return c.JSON(statusCode, &types.ErrorMessage{
		Message: err.Error(),
	})
}
