package inits

import (
	"fmt"
	"github.com/caarlos0/env/v11"
	"splitboard/app/watcher/config"
	"strings"
)

func Config() (*config.Config, error) {
	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.IsProd = strings.HasPrefix(strings.ToLower(cfg.Mode), "p")

	if cfg.BoardID == 0 {
		return nil, fmt.Errorf("BOARD_ID should be a positive integer")
	}
	if cfg.ReconnectInterval <= 0 {
		return nil, fmt.Errorf("RECONNECT_INTERVAL should be positive")
	}
	if cfg.RefreshInterval < 0 {
		return nil, fmt.Errorf("REFRESH_INTERVAL should not be negative")
	}

	return &cfg, nil
}
