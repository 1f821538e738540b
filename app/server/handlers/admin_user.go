package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"splitboard/app/server/middlewares"
	"splitboard/app/server/models"
	"splitboard/app/server/store"
	"splitboard/app/server/types"
)

func userInfo(user *models.User) *types.UserInfo {
	return &types.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

func deref[T any](p *T) (v T) {
	if p != nil {
		v = *p
	}
	return
}

func (a *App) UserCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.UserInput
	if err := bindBody(c, &req); err != nil {
		return a.fail(c, err)
	}

	// 创建用户
	user, err := a.users.Create(rctx, deref(req.Username), deref(req.Password), deref(req.Role))
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(http.StatusOK, idResponse(user.ID))
}

func (a *App) UserList(c echo.Context) error {
	rctx := c.Request().Context()

	showAll, limit, offset, err := parsePagination(c)
	if err != nil {
		return a.fail(c, err)
	}

	users, count, err := a.users.List(rctx, limit, offset)
	if err != nil {
		return a.fail(c, err)
	}

	resUsers := []*types.UserInfo{}
	for i := range users {
		resUsers = append(resUsers, userInfo(&users[i]))
	}

	setPageHeaders(c, count, showAll, limit)
	return c.JSON(http.StatusOK, resUsers)
}

// UserInfoGetSelf 返回当前登录的用户，任何已登录的用户都可以调用
func (a *App) UserInfoGetSelf(c echo.Context) error {
	identity := middlewares.GetIdentity(c)
	if identity == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	user, err := a.users.Get(c.Request().Context(), identity.UserID)
	if err != nil {
		return a.fail(c, err, zap.Uint("id", identity.UserID))
	}

	return c.JSON(http.StatusOK, userInfo(user))
}

func (a *App) UserInfoGet(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return a.fail(c, err)
	}

	// 从数据库中获得指定的用户
	user, err := a.users.Get(c.Request().Context(), id)
	if err != nil {
		return a.fail(c, err, zap.Uint("id", id))
	}

	return c.JSON(http.StatusOK, userInfo(user))
}

func (a *App) UserInfoUpdate(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return a.fail(c, err)
	}

	// 绑定请求体
	var req types.UserInput
	if err = bindBody(c, &req); err != nil {
		return a.fail(c, err)
	}

	// 更新用户信息
	if _, err = a.users.Update(c.Request().Context(), id, store.UserFields{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}); err != nil {
		return a.fail(c, err, zap.Uint("id", id))
	}

	return c.JSON(http.StatusOK, idResponse(id))
}

func (a *App) UserDelete(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return a.fail(c, err)
	}

	// 删除用户
	if err = a.users.Delete(c.Request().Context(), id); err != nil {
		return a.fail(c, err, zap.Uint("id", id))
	}

	return c.JSON(http.StatusOK, idResponse(id))
}
