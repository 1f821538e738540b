package store

import (
	"fmt"
	"splitboard/app/server/constants"
)

// Notifier 在数据提交之后被调用，实现方不能阻塞调用者
type Notifier interface {
	Broadcast(channel string)
}

type NopNotifier struct{}

func (NopNotifier) Broadcast(string) {}

func BoardChannel(id uint) string {
	return fmt.Sprintf(constants.ChannelBoardUpdate, id)
}
