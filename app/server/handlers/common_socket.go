package handlers

import "github.com/labstack/echo/v4"

func (a *App) Socket(c echo.Context) error {
	return a.hub.ServeWS(c)
}
