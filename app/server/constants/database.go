package constants

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

// 前端静态文件
const (
	StaticIndexFile = "index.html"
	APIPrefix       = "/api"
	SocketPath      = "/sock"
)
