package config

import "time"

type Config struct {
	System struct {
		Mode                  string `env:"MODE"`                                   // 运行模式， p 开头（例如 prod ）视为生产环境
		IsProd                bool                                                  // 是否为生产环境（由 Mode 推导）
		Listen                string `env:"LISTEN" envDefault:":8080"`              // 监听地址
		DBDriver              string `env:"DB_DRIVER" envDefault:"postgres"`        // 数据库类型： postgres 或 sqlite
		DBConnectionString    string `env:"DB_CONN,required,notEmpty"`              // 数据库的连接字符串（ sqlite 时为文件路径）
		RedisConnectionString string `env:"REDIS_CONN"`                             // Redis 的连接字符串，留空则只在本进程内推送更新
		StaticDir             string `env:"STATIC_DIR" envDefault:"frontend"`       // 前端静态文件目录
		CORSAllow             bool   `env:"CORS_ALLOW"`                             // 是否允许跨域（开发模式下总是允许）
		APIDocs               bool   `env:"API_DOCS"`                               // 生产环境中是否提供 API 文档（仅限本机访问）
		DefaultPassword       string `env:"DEFAULT_PSW"`                            // 初始 admin 用户的密码，留空则随机生成
	}
	Security struct {
		SignatureSecretKey string        `env:"SIGNATURE_SECRET_KEY"`                 // 签名密钥，留空则使用数据库中自动生成的密钥
		TokenTTL           time.Duration `env:"TOKEN_TTL" envDefault:"0s"`            // 令牌有效期， 0 表示不设置过期时间
		LoginMinLatency    time.Duration `env:"LOGIN_MIN_LATENCY" envDefault:"300ms"` // 每次登录请求的最短耗时，用于抵御暴力破解
	}
}
