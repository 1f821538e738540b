package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"go.uber.org/zap"
	"net/http"
	"net/url"
	"splitboard/app/server/constants"
	"splitboard/app/server/types"
	"strconv"
)

// refresh 拉取看板并输出摘要。
// 已经有一次拉取在进行时不会并发拉取，而是在它结束后再补拉一次。
func (a *App) refresh(ctx context.Context) {
	a.lock.Lock()
	if a.running {
		a.pending = true
		a.lock.Unlock()
		return
	}
	a.running = true
	a.lock.Unlock()

	for {
		a.fetchAndLog(ctx)

		a.lock.Lock()
		if !a.pending || ctx.Err() != nil {
			a.running = false
			a.pending = false
			a.lock.Unlock()
			return
		}
		a.pending = false
		a.lock.Unlock()
	}
}

func (a *App) fetchAndLog(ctx context.Context) {
	board, err := a.fetchBoard(ctx)
	if err != nil {
		a.l.Error("failed to fetch board", zap.Error(err))
		return
	}

	var paid, price float64
	for _, m := range board.Members {
		paid += m.Paid
	}
	for _, p := range board.Products {
		price += p.Price
	}

	a.l.Info("board refreshed",
		zap.String("name", board.Name),
		zap.Int("categories", len(board.Categories)),
		zap.Int("members", len(board.Members)),
		zap.Int("products", len(board.Products)),
		zap.Float64("paid", paid),
		zap.Float64("price", price),
	)
}

func (a *App) fetchBoard(ctx context.Context) (*types.BoardInfo, error) {
	// 准备请求的基础信息
	reqUrl, err := url.JoinPath(a.cfg.ServerEndpoint, constants.APIPrefix, "boards", strconv.FormatUint(uint64(a.cfg.BoardID), 10))
	if err != nil {
		return nil, fmt.Errorf("fail to join board request url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("fail to prepare board request: %w", err)
	}

	// 发送请求
	res, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fail to send board request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	// 解析请求体
	var board types.BoardInfo
	if err = json.NewDecoder(res.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("fail to decode board response: %w", err)
	}

	return &board, nil
}
