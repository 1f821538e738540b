package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"go.uber.org/zap"
	"net/url"
	"splitboard/app/server/constants"
	"splitboard/app/server/realtime"
)

// socketURL 把 http(s) 地址转换为对应的 ws(s) 地址
func socketURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	return u.JoinPath(constants.APIPrefix, constants.SocketPath).String(), nil
}

// watch 建立一次连接并处理推送，直到连接断开或 ctx 结束
func (a *App) watch(ctx context.Context) error {
	wsUrl, err := socketURL(a.cfg.ServerEndpoint)
	if err != nil {
		return err
	}

	conn, _, err := a.dialer.DialContext(ctx, wsUrl, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsUrl, err)
	}
	defer conn.Close()

	a.l.Info("connected", zap.String("url", wsUrl))

	// ctx 结束时关闭连接，让下面的读取返回
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	// 断线期间可能错过了通知，连上后先拉取一次
	a.refresh(ctx)

	boardChannel := fmt.Sprintf(constants.ChannelBoardUpdate, a.cfg.BoardID)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		var event realtime.Event
		if err = json.Unmarshal(data, &event); err != nil {
			a.l.Warn("invalid event", zap.ByteString("data", data), zap.Error(err))
			continue
		}

		switch event.Event {
		case boardChannel, constants.ChannelUpdate:
			a.l.Debug("update received", zap.String("event", event.Event))
			a.refresh(ctx)
		}
	}
}
