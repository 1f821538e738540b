package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"splitboard/app/server/models"
	"splitboard/app/server/store"
	"splitboard/app/server/types"
)

func (a *App) ProductList(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}

	products, err := a.boards.Products(c.Request().Context(), id)
	if err != nil {
		return a.fail(c, err, zap.Uint("board", id))
	}
	if products == nil {
		products = []models.Product{}
	}

	return c.JSON(http.StatusOK, products)
}

func (a *App) ProductCreate(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}

	// 绑定请求体
	var req types.ProductInput
	if err = bindBody(c, &req); err != nil {
		return a.fail(c, err)
	}

	newID, err := a.boards.AddProduct(c.Request().Context(), id, store.ProductFields{
		Name:       req.Name,
		Price:      req.Price,
		Categories: req.Categories,
	})
	if err != nil {
		return a.fail(c, err, zap.Uint("board", id))
	}

	return c.JSON(http.StatusOK, &types.IDResponse{ID: newID.String()})
}

func (a *App) ProductUpdate(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}
	productID, err := subID(c)
	if err != nil {
		return a.fail(c, err)
	}

	// 绑定请求体
	var req types.ProductInput
	if err = bindBody(c, &req); err != nil {
		return a.fail(c, err)
	}

	if err = a.boards.EditProduct(c.Request().Context(), id, productID, store.ProductFields{
		Name:       req.Name,
		Price:      req.Price,
		Categories: req.Categories,
	}); err != nil {
		return a.fail(c, err, zap.Uint("board", id), zap.Stringer("product", productID))
	}

	return c.JSON(http.StatusOK, &types.IDResponse{ID: productID.String()})
}

func (a *App) ProductDelete(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}
	productID, err := subID(c)
	if err != nil {
		return a.fail(c, err)
	}

	if err = a.boards.DeleteProduct(c.Request().Context(), id, productID); err != nil {
		return a.fail(c, err, zap.Uint("board", id), zap.Stringer("product", productID))
	}

	return c.JSON(http.StatusOK, &types.IDResponse{ID: productID.String()})
}
