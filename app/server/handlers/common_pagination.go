package handlers

import (
	"fmt"
	"github.com/labstack/echo/v4"
	"splitboard/app/server/store"
	"splitboard/app/server/utils"
	"strconv"
)

const (
	headerTotalCount = "X-Total-Count"
	headerPageMax    = "X-Page-Max"

	defaultPageLimit = 100
	maxPageLimit     = 1000 // 限制每页数量，保证 offset 不会溢出
)

// parsePagination 读取 page 和 limit 查询参数。
// 都没有传入（或都为 0 ）时展示全部，返回的 limit 与 offset 为 -1 。
func parsePagination(c echo.Context) (showAll bool, limit int, offset int, err error) {
	var page, lim *uint
	if page, err = queryUint(c, "page"); err != nil {
		return
	}
	if lim, err = queryUint(c, "limit"); err != nil {
		return
	}

	if (page == nil && lim == nil) || (page != nil && *page == 0 && lim != nil && *lim == 0) {
		// 特殊参数：展示全部
		return true, -1, -1, nil
	}

	// 映射前：第几页，每页限制多少个
	// 映射后：页减一，限制不变
	var parsedPage, parsedLimit uint

	if page == nil || *page < 1 {
		parsedPage = 0
	} else {
		parsedPage = *page - 1
	}

	if lim == nil || *lim == 0 {
		parsedLimit = defaultPageLimit
	} else if *lim > maxPageLimit {
		return false, 0, 0, fmt.Errorf("%w: limit should not exceed %d", store.ErrInvalidRequest, maxPageLimit)
	} else {
		parsedLimit = *lim
	}

	return false, int(parsedLimit), int(uint64(parsedPage) * uint64(parsedLimit)), nil
}

func queryUint(c echo.Context, name string) (*uint, error) {
	s := c.QueryParam(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %w", store.ErrInvalidRequest, name, err)
	}
	return utils.P(uint(v)), nil
}

func calcMaxPage(count int64, showAll bool, limit int) int64 {
	if showAll {
		return 1
	}
	pageMax := count / int64(limit)
	if (count % int64(limit)) != 0 {
		pageMax++
	}
	return pageMax
}

// setPageHeaders 分页信息放在响应头中，响应体保持为列表
func setPageHeaders(c echo.Context, count int64, showAll bool, limit int) {
	c.Response().Header().Set(headerTotalCount, strconv.FormatInt(count, 10))
	c.Response().Header().Set(headerPageMax, strconv.FormatInt(calcMaxPage(count, showAll, limit), 10))
}
