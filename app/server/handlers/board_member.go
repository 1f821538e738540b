package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"splitboard/app/server/models"
	"splitboard/app/server/store"
	"splitboard/app/server/types"
)

func (a *App) MemberList(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}

	members, err := a.boards.Members(c.Request().Context(), id)
	if err != nil {
		return a.fail(c, err, zap.Uint("board", id))
	}
	if members == nil {
		members = []models.Member{}
	}

	return c.JSON(http.StatusOK, members)
}

func (a *App) MemberCreate(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}

	// 绑定请求体
	var req types.MemberInput
	if err = bindBody(c, &req); err != nil {
		return a.fail(c, err)
	}

	newID, err := a.boards.AddMember(c.Request().Context(), id, store.MemberFields{
		Name:       req.Name,
		Paid:       req.Paid,
		Categories: req.Categories,
	})
	if err != nil {
		return a.fail(c, err, zap.Uint("board", id))
	}

	return c.JSON(http.StatusOK, &types.IDResponse{ID: newID.String()})
}

func (a *App) MemberUpdate(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}
	memberID, err := subID(c)
	if err != nil {
		return a.fail(c, err)
	}

	// 绑定请求体
	var req types.MemberInput
	if err = bindBody(c, &req); err != nil {
		return a.fail(c, err)
	}

	if err = a.boards.EditMember(c.Request().Context(), id, memberID, store.MemberFields{
		Name:       req.Name,
		Paid:       req.Paid,
		Categories: req.Categories,
	}); err != nil {
		return a.fail(c, err, zap.Uint("board", id), zap.Stringer("member", memberID))
	}

	return c.JSON(http.StatusOK, &types.IDResponse{ID: memberID.String()})
}

func (a *App) MemberDelete(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}
	memberID, err := subID(c)
	if err != nil {
		return a.fail(c, err)
	}

	if err = a.boards.DeleteMember(c.Request().Context(), id, memberID); err != nil {
		return a.fail(c, err, zap.Uint("board", id), zap.Stringer("member", memberID))
	}

	return c.JSON(http.StatusOK, &types.IDResponse{ID: memberID.String()})
}
