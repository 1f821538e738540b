package inits

import (
	"fmt"
	"github.com/caarlos0/env/v11"
	"splitboard/app/server/config"
	"splitboard/app/server/constants"
	"strings"
)

func Config() (*config.Config, error) {
	var cfg config.Config

	// 环境变量自动映射
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.System.IsProd = strings.HasPrefix(strings.ToLower(cfg.System.Mode), "p")

	switch cfg.System.DBDriver {
	case constants.DBDriverPostgres, constants.DBDriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.System.DBDriver)
	}

	// 登录延迟不能低于下限
	if cfg.Security.LoginMinLatency < constants.LoginMinLatency {
		cfg.Security.LoginMinLatency = constants.LoginMinLatency
	}

	if cfg.Security.TokenTTL < 0 {
		return nil, fmt.Errorf("TOKEN_TTL should not be negative")
	}

	return &cfg, nil
}
