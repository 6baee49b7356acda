package eventbus

import (
	"github.com/dep2p/go-lobby/internal/core/dispatch"
	"github.com/dep2p/go-lobby/pkg/types"
)

// Emitter 绑定来源的事件发射器
//
// 配置了工作池时，事件以来源为键提交到工作池异步发布，
// 同一来源的事件保持顺序；否则同步发布。
//
// Emit 用于尽力而为的通知，队列满时丢弃；
// EmitControl 用于驱动状态机的事件，队列满时等待。
type Emitter struct {
	bus    *Bus
	pool   *dispatch.Pool
	source string
}

// Emitter 返回来源的发射器，pool 可为 nil
func (b *Bus) Emitter(source string, pool *dispatch.Pool) *Emitter {
	return &Emitter{bus: b, pool: pool, source: source}
}

// Source 返回来源
func (e *Emitter) Source() string {
	return e.source
}

// Emit 发布事件
//
// 工作池已关闭或队列已满时返回对应错误，事件被丢弃。
func (e *Emitter) Emit(evt types.Event) error {
	if e.pool == nil {
		e.bus.Publish(e.source, evt)
		return nil
	}
	err := e.pool.Submit(e.source, func() {
		e.bus.Publish(e.source, evt)
	})
	if err != nil {
		logger.Debug("事件未能提交", "source", e.source, "event", evt.Type(), "error", err)
	}
	return err
}

// EmitControl 发布不可丢弃的事件
//
// 队列满时阻塞到有空位；只有工作池已关闭时返回错误。
func (e *Emitter) EmitControl(evt types.Event) error {
	if e.pool == nil {
		e.bus.Publish(e.source, evt)
		return nil
	}
	err := e.pool.SubmitWait(e.source, func() {
		e.bus.Publish(e.source, evt)
	})
	if err != nil {
		logger.Warn("控制事件未能提交", "source", e.source, "event", evt.Type(), "error", err)
	}
	return err
}
