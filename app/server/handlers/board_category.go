package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"splitboard/app/server/models"
	"splitboard/app/server/store"
	"splitboard/app/server/types"
)

func (a *App) CategoryList(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}

	categories, err := a.boards.Categories(c.Request().Context(), id)
	if err != nil {
		return a.fail(c, err, zap.Uint("board", id))
	}
	if categories == nil {
		categories = []models.Category{}
	}

	return c.JSON(http.StatusOK, categories)
}

func (a *App) CategoryCreate(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}

	// 绑定请求体
	var req types.CategoryInput
	if err = bindBody(c, &req); err != nil {
		return a.fail(c, err)
	}

	newID, err := a.boards.AddCategory(c.Request().Context(), id, store.CategoryFields{
		Name:  req.Name,
		Order: req.Order,
	})
	if err != nil {
		return a.fail(c, err, zap.Uint("board", id))
	}

	return c.JSON(http.StatusOK, &types.IDResponse{ID: newID.String()})
}

func (a *App) CategoryUpdate(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}
	categoryID, err := subID(c)
	if err != nil {
		return a.fail(c, err)
	}

	// 绑定请求体
	var req types.CategoryInput
	if err = bindBody(c, &req); err != nil {
		return a.fail(c, err)
	}

	if err = a.boards.EditCategory(c.Request().Context(), id, categoryID, store.CategoryFields{
		Name:  req.Name,
		Order: req.Order,
	}); err != nil {
		return a.fail(c, err, zap.Uint("board", id), zap.Stringer("category", categoryID))
	}

	return c.JSON(http.StatusOK, &types.IDResponse{ID: categoryID.String()})
}

func (a *App) CategoryDelete(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}
	categoryID, err := subID(c)
	if err != nil {
		return a.fail(c, err)
	}

	if err = a.boards.DeleteCategory(c.Request().Context(), id, categoryID); err != nil {
		return a.fail(c, err, zap.Uint("board", id), zap.Stringer("category", categoryID))
	}

	return c.JSON(http.StatusOK, &types.IDResponse{ID: categoryID.String()})
}
