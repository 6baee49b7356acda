package eventbus

import (
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/types"
)

// Listener 事件监听者
//
// 实现必须可比较（通常是指针），以便取消订阅。
type Listener = interfaces.EventListener

// FuncListener 函数监听者
//
// 以指针身份区分，同一函数包装两次得到两个不同的监听者。
type FuncListener struct {
	fn func(types.Event)
}

// ListenerFunc 将函数包装为监听者
func ListenerFunc(fn func(types.Event)) *FuncListener {
	return &FuncListener{fn: fn}
}

// HandleEvent 实现 Listener
func (l *FuncListener) HandleEvent(evt types.Event) {
	if l.fn != nil {
		l.fn(evt)
	}
}
