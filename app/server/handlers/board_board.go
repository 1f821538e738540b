package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"splitboard/app/server/models"
	"splitboard/app/server/store"
	"splitboard/app/server/types"
	"strconv"
)

func boardInfo(board *models.Board) types.BoardInfo {
	info := types.BoardInfo{
		ID:         board.ID,
		Name:       board.Name,
		Categories: board.Categories,
		Members:    board.Members,
		Products:   board.Products,
	}

	// 保证输出为 [] 而不是 null
	if info.Categories == nil {
		info.Categories = []models.Category{}
	}
	if info.Members == nil {
		info.Members = []models.Member{}
	}
	if info.Products == nil {
		info.Products = []models.Product{}
	}

	return info
}

func idResponse(id uint) *types.IDResponse {
	return &types.IDResponse{ID: strconv.FormatUint(uint64(id), 10)}
}

func (a *App) BoardList(c echo.Context) error {
	rctx := c.Request().Context()

	showAll, limit, offset, err := parsePagination(c)
	if err != nil {
		return a.fail(c, err)
	}

	boards, count, err := a.boards.List(rctx, limit, offset)
	if err != nil {
		return a.fail(c, err)
	}

	res := []types.BoardInfo{}
	for i := range boards {
		res = append(res, boardInfo(&boards[i]))
	}

	setPageHeaders(c, count, showAll, limit)
	return c.JSON(http.StatusOK, res)
}

func (a *App) BoardCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.BoardInput
	if err := bindBody(c, &req); err != nil {
		return a.fail(c, err)
	}
	if req.Name == nil {
		return a.er(c, http.StatusBadRequest)
	}

	board, err := a.boards.Create(rctx, *req.Name)
	if err != nil {
		return a.fail(c, err)
	}

	return c.JSON(http.StatusOK, idResponse(board.ID))
}

func (a *App) BoardGet(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}

	board, err := a.boards.Get(c.Request().Context(), id)
	if err != nil {
		return a.fail(c, err, zap.Uint("id", id))
	}

	return c.JSON(http.StatusOK, boardInfo(board))
}

func (a *App) BoardUpdate(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}

	// 绑定请求体
	var req types.BoardInput
	if err = bindBody(c, &req); err != nil {
		return a.fail(c, err)
	}

	if err = a.boards.Update(c.Request().Context(), id, store.BoardFields{
		Name: req.Name,
	}); err != nil {
		return a.fail(c, err, zap.Uint("id", id))
	}

	return c.JSON(http.StatusOK, idResponse(id))
}

func (a *App) BoardDelete(c echo.Context) error {
	id, err := boardID(c)
	if err != nil {
		return a.fail(c, err)
	}

	if err = a.boards.Delete(c.Request().Context(), id); err != nil {
		return a.fail(c, err, zap.Uint("id", id))
	}

	return c.JSON(http.StatusOK, idResponse(id))
}
