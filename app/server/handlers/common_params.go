package handlers

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"splitboard/app/server/store"
	"splitboard/app/server/utils"
)

// boardID 解析路径中的看板 ID ，无法解析的 ID 一定不存在
func boardID(c echo.Context) (uint, error) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}
	return id, nil
}

func userID(c echo.Context) (uint, error) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}
	return id, nil
}

// subID 解析子项 ID ，格式错误属于无效请求
func subID(c echo.Context) (uuid.UUID, error) {
	id, err := utils.ParseUUID(c.Param("subId"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", store.ErrInvalidRequest, err)
	}
	return id, nil
}

func bindBody(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidRequest, err)
	}
	return nil
}
