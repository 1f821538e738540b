package handlers

import (
	"github.com/labstack/echo/v4"
	"splitboard/app/server/auth"
	"splitboard/app/server/constants"
	"splitboard/app/server/middlewares"
)

func (a *App) RegisterHandlers(e *echo.Echo) {
	api := e.Group(constants.APIPrefix, middlewares.Identity(a.issuer, a.l))

	public := middlewares.Require(a.l, auth.TierPublic)
	guest := middlewares.Require(a.l, auth.TierGuest)
	editor := middlewares.Require(a.l, auth.TierEditor)
	admin := middlewares.Require(a.l, auth.TierAdmin)

	// 通用
	api.POST("/login", a.AuthLogin, public)
	api.GET("/healthcheck", a.HealthCheck, public)
	api.GET(constants.SocketPath, a.Socket, public)

	// 看板
	api.GET("/boards", a.BoardList, public)
	api.PUT("/boards", a.BoardCreate, editor)
	api.GET("/boards/:id", a.BoardGet, public)
	api.POST("/boards/:id", a.BoardUpdate, editor)
	api.DELETE("/boards/:id", a.BoardDelete, editor)

	// 看板内的子项
	api.GET("/boards/:id/categories", a.CategoryList, public)
	api.PUT("/boards/:id/categories", a.CategoryCreate, editor)
	api.POST("/boards/:id/categories/:subId", a.CategoryUpdate, editor)
	api.DELETE("/boards/:id/categories/:subId", a.CategoryDelete, editor)

	api.GET("/boards/:id/members", a.MemberList, public)
	api.PUT("/boards/:id/members", a.MemberCreate, editor)
	api.POST("/boards/:id/members/:subId", a.MemberUpdate, editor)
	api.DELETE("/boards/:id/members/:subId", a.MemberDelete, editor)

	api.GET("/boards/:id/products", a.ProductList, public)
	api.PUT("/boards/:id/products", a.ProductCreate, editor)
	api.POST("/boards/:id/products/:subId", a.ProductUpdate, editor)
	api.DELETE("/boards/:id/products/:subId", a.ProductDelete, editor)

	// 用户
	api.GET("/users/me", a.UserInfoGetSelf, guest)
	api.GET("/users", a.UserList, admin)
	api.PUT("/users", a.UserCreate, admin)
	api.GET("/users/:id", a.UserInfoGet, admin)
	api.POST("/users/:id", a.UserInfoUpdate, admin)
	api.DELETE("/users/:id", a.UserDelete, admin)
}
