package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"splitboard/app/watcher/handlers"
	"splitboard/app/watcher/inits"
	"syscall"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	l.Debug("logger initialized")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 持续监听，直到收到退出信号
	handlers.NewApp(cfg, l).Run(ctx)

	l.Info("stopped")
}
