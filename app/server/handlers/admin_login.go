package handlers

import (
	"github.com/labstack/echo/v4"
	"net/http"
	"splitboard/app/server/constants"
	"splitboard/app/server/types"
)

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定表单
	var req types.LoginForm
	if err := bindBody(c, &req); err != nil {
		return a.fail(c, err)
	}

	token, err := a.issuer.Login(rctx, req.Username, req.Password)
	if err != nil {
		return a.fail(c, err)
	}

	// 返回
	return c.JSON(http.StatusOK, &types.LoginToken{
		AccessToken: token,
		TokenType:   constants.TokenType,
	})
}
