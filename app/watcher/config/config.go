package config

import (
	"time"
)

type Config struct {
	// 基础配置
	Mode   string `env:"MODE"`
	IsProd bool

	// 与 Server 通信配置
	ServerEndpoint    string        `env:"SERVER_ENDPOINT,required,notEmpty"`   // 例如 http://localhost:8080
	BoardID           uint          `env:"BOARD_ID,required"`                   // 关注的看板
	ReconnectInterval time.Duration `env:"RECONNECT_INTERVAL" envDefault:"5s"` // 连接断开后的重连间隔
	RefreshInterval   time.Duration `env:"REFRESH_INTERVAL" envDefault:"0s"`   // 定时全量拉取的间隔， 0 表示只在收到通知时拉取
}
