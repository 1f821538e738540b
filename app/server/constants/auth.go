package constants

import "time"

const (
	AppName = "splitboard"

	ReservedUsername = "admin" // 保留用户名，只能由初始化流程创建

	LoginMinLatency = 300 * time.Millisecond // 登录请求的最短耗时下限

	AppSecretKey         = "APP_SECRET" // 签名密钥在 env 表中的 key
	AppSecretBytes       = 32
	DefaultPasswordBytes = 12

	TokenType = "bearer"
)
