package handlers

import (
	"context"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"net/http"
	"splitboard/app/watcher/config"
	"sync"
	"time"
)

type App struct {
	cfg *config.Config
	l   *zap.Logger

	client *http.Client
	dialer *websocket.Dialer

	lock    sync.Mutex
	running bool // 正在拉取
	pending bool // 拉取期间又收到了通知
}

func NewApp(cfg *config.Config, l *zap.Logger) *App {
	return &App{
		cfg: cfg,
		l:   l.With(zap.Uint("board", cfg.BoardID)),

		client: &http.Client{Timeout: 10 * time.Second},
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

// Run 阻塞直到 ctx 结束；连接断开后按间隔重连
func (a *App) Run(ctx context.Context) {
	if a.cfg.RefreshInterval > 0 {
		go a.loop(ctx)
	}

	for {
		if err := a.watch(ctx); err != nil && ctx.Err() == nil {
			a.l.Warn("connection lost", zap.Duration("retry", a.cfg.ReconnectInterval), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(a.cfg.ReconnectInterval):
		}
	}
}

// loop 定时拉取，防止错过通知
func (a *App) loop(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.l.Debug("refresh loop")
			a.refresh(ctx)
		case <-ctx.Done():
			a.l.Debug("stop refresh loop")
			return
		}
	}
}
