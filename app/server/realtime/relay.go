package realtime

import (
	"context"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"splitboard/app/server/constants"
	"splitboard/app/server/store"
	"time"
)

// RedisRelay 通过 Redis 发布订阅把事件转发给所有服务进程，
// 每个进程收到后再交给自己的本地 Hub 推送。
type RedisRelay struct {
	l     *zap.Logger
	rdb   *redis.Client
	local store.Notifier
}

func NewRedisRelay(l *zap.Logger, rdb *redis.Client, local store.Notifier) *RedisRelay {
	return &RedisRelay{
		l:     l,
		rdb:   rdb,
		local: local,
	}
}

// Broadcast 异步发布，不阻塞调用者；发布失败时至少推送给本进程的连接
func (r *RedisRelay) Broadcast(channel string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RedisPublishTimeout)
		defer cancel()

		if err := r.rdb.Publish(ctx, constants.RedisEventsChannel, channel).Err(); err != nil {
			r.l.Error("failed to publish event", zap.String("channel", channel), zap.Error(err))
			r.local.Broadcast(channel)
		}
	}()
}

// Run 订阅 Redis 频道并把收到的事件转给本地，直到 ctx 结束
func (r *RedisRelay) Run(ctx context.Context) {
	for {
		if err := r.subscribe(ctx); err != nil {
			r.l.Error("failed to subscribe events", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(constants.RedisResubscribeDelay):
		}
	}
}

func (r *RedisRelay) subscribe(ctx context.Context) error {
	sub := r.rdb.Subscribe(ctx, constants.RedisEventsChannel)
	defer sub.Close()

	// 等待订阅确认
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	r.l.Debug("subscribed to events", zap.String("channel", constants.RedisEventsChannel))

	// Channel 在连接断开时会自动重连，只有 Close 之后才会关闭
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.local.Broadcast(msg.Payload)
		}
	}
}
