package middlewares

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"splitboard/app/server/auth"
	"splitboard/app/server/types"
)

const contextKeyIdentity = "identity"

// Identity 从 Authorization: Bearer 中解析当前用户。
// 没有令牌或令牌无效时按匿名继续处理，由 Require 决定是否拒绝。
func Identity(issuer *auth.Issuer, l *zap.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: contextKeyIdentity,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			id, ok := issuer.Verify(c.Request().Context(), token)
			if !ok {
				return nil, auth.ErrUnauthorized
			}
			return &id, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			l.Debug("request treated as anonymous", zap.String("path", c.Path()), zap.Error(err))
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// GetIdentity 返回当前请求的用户，匿名时为 nil
func GetIdentity(c echo.Context) *auth.Identity {
	id, _ := c.Get(contextKeyIdentity).(*auth.Identity)
	return id
}

// Require 拒绝不满足权限等级的请求
func Require(l *zap.Logger, tier auth.Tier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !tier.Allows(GetIdentity(c)) {
				l.Debug("request rejected", zap.Stringer("tier", tier), zap.String("path", c.Path()))
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return c.JSON(http.StatusUnauthorized, &types.ErrorMessage{
					Message: "Could not validate credentials",
				})
			}

			// 继续处理
			return next(c)
		}
	}
}
