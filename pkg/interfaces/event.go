package interfaces

import (
	"github.com/dep2p/go-lobby/pkg/types"
)

// EventListener 原始事件监听者
//
// 接收会话外部总线上的全部事件（types.Evt*）。
// 实现必须可比较（通常是指针），以便取消订阅。
type EventListener interface {
	HandleEvent(evt types.Event)
}
