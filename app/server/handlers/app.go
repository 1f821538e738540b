package handlers

import (
	"go.uber.org/zap"
	"splitboard/app/server/auth"
	"splitboard/app/server/realtime"
	"splitboard/app/server/store"
)

type App struct {
	l      *zap.Logger   // 日志
	boards *store.Boards // 看板
	users  *store.Users  // 用户
	issuer *auth.Issuer  // 登录与令牌校验
	hub    *realtime.Hub // WebSocket 推送
}

func NewApp(l *zap.Logger, boards *store.Boards, users *store.Users, issuer *auth.Issuer, hub *realtime.Hub) *App {
	return &App{
		l:      l,
		boards: boards,
		users:  users,
		issuer: issuer,
		hub:    hub,
	}
}
