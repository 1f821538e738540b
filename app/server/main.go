package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"log"
	"os"
	"splitboard/app/server/config"
	"splitboard/app/server/constants"
	"splitboard/app/server/inits"
)

var rootCmd = &cobra.Command{
	Use:   constants.AppName,
	Short: "Board management server with realtime updates",
	Long: `Serves the board REST API under /api, pushes update events over a WebSocket at /api/sock,
and serves the frontend bundle for every other path. Configuration is read from the environment.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Run: serve,
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// prepare 初始化配置、日志和数据库连接，任何一步失败都直接退出
func prepare() (*config.Config, *zap.Logger, *gorm.DB) {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBDriver, cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	return cfg, l, db
}
