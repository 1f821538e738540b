package constants

import "time"

// 实时推送频道
const (
	ChannelUpdate      = "update"    // 全局：看板列表、用户有变化
	ChannelBoardUpdate = "update:%d" // %d -> board id ：看板内的分类、成员、商品有变化
	EventSignal        = "update"    // 推送内容本身没有意义，客户端收到后自行重新拉取
)

// 多实例之间通过 Redis 转发推送
const (
	RedisEventsChannel    = "splitboard:events"
	RedisPublishTimeout   = 3 * time.Second
	RedisResubscribeDelay = 5 * time.Second
)

// WebSocket 连接参数
const (
	WSSendBufferSize = 64
	WSPingInterval   = 10 * time.Second
	WSPongWait       = 20 * time.Second
	WSWriteWait      = 10 * time.Second
	WSMaxMessageSize = 4096
)
