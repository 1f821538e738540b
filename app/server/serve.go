package main

import (
	"context"
	"errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"net/http"
	"os"
	"os/signal"
	"splitboard/app/server/apidocs"
	"splitboard/app/server/auth"
	"splitboard/app/server/config"
	"splitboard/app/server/constants"
	"splitboard/app/server/handlers"
	"splitboard/app/server/inits"
	"splitboard/app/server/jwt"
	"splitboard/app/server/realtime"
	"splitboard/app/server/store"
	"strings"
	"syscall"
	"time"
)

func serve(cmd *cobra.Command, _ []string) {
	cfg, l, db := prepare()
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化 redis 连接（可选）
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 初始化推送：配置了 Redis 时经由 Redis 转发到所有进程
	hub := realtime.NewHub(l.Named("realtime"))
	var notifier store.Notifier = hub
	if rdb != nil {
		relay := realtime.NewRedisRelay(l.Named("relay"), rdb, hub)
		go relay.Run(ctx)
		notifier = relay
	}

	boards := store.NewBoards(db, notifier)
	users := store.NewUsers(db, notifier, l)

	// 初始化启动数据
	if err = users.EnsureAdmin(ctx, cfg.System.DefaultPassword); err != nil {
		l.Fatal("error creating admin user", zap.Error(err))
	}

	// 初始化 JWT
	secret, err := inits.Secret(ctx, db, cfg.Security.SignatureSecretKey)
	if err != nil {
		l.Fatal("error provisioning secret", zap.Error(err))
	}
	j, err := jwt.New(secret, cfg.Security.TokenTTL)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 准备 handler app
	issuer := auth.NewIssuer(l, users, j, cfg.Security.LoginMinLatency)
	handlerApp := handlers.NewApp(l, boards, users, issuer, hub)

	// 准备 echo 服务
	e := newServer(ctx, cfg, l, handlerApp)

	// 通知已连接（重连）的客户端重新拉取
	notifier.Broadcast(constants.ChannelUpdate)

	// 启动 echo 服务
	go func() {
		if err := e.Start(cfg.System.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("shutting down the server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	l.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Error("error shutting down the server", zap.Error(err))
	}
	hub.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// newServer 创建 echo 实例：中间件、 API 路由、文档和前端静态文件
func newServer(ctx context.Context, cfg *config.Config, l *zap.Logger, handlerApp *handlers.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogMethod: true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	if cfg.System.CORSAllow || !cfg.System.IsProd {
		e.Use(middleware.CORS())
	}

	// 绑定 echo 服务
	handlerApp.RegisterHandlers(e)

	// 添加 API 文档，生产环境中只允许本机访问
	if !cfg.System.IsProd || cfg.System.APIDocs {
		if swgJson, err := apidocs.Spec(ctx); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		} else {
			var opts []apidocs.Opts
			if cfg.System.IsProd {
				opts = append(opts, apidocs.WithAuthorizer(apidocs.LoopbackOnly))
			}
			e.Pre(apidocs.Doc(constants.APIPrefix, swgJson, opts...))
		}
	}

	// 前端静态文件，找不到的路径回退到 index.html
	if st, err := os.Stat(cfg.System.StaticDir); err == nil && st.IsDir() {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  cfg.System.StaticDir,
			Index: constants.StaticIndexFile,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Request().URL.Path, constants.APIPrefix)
			},
		}))
	} else {
		l.Warn("static directory not found, frontend disabled", zap.String("dir", cfg.System.StaticDir))
	}

	return e
}
