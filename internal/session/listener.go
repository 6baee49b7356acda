package session

import (
	"github.com/dep2p/go-lobby/internal/core/eventbus"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/types"
)

// AddListener 注册表现层监听者，重复注册无效
//
// l 必须可比较（通常是指针）。
func (c *Coordinator) AddListener(l interfaces.SessionListener) {
	if l == nil {
		return
	}

	c.mu.Lock()
	if _, ok := c.listeners[l]; ok {
		c.mu.Unlock()
		return
	}
	fl := eventbus.ListenerFunc(func(evt types.Event) {
		dispatchToListener(l, evt)
	})
	c.listeners[l] = fl
	c.mu.Unlock()

	c.external.Subscribe(Source, fl)
}

// RemoveListener 注销表现层监听者
func (c *Coordinator) RemoveListener(l interfaces.SessionListener) {
	c.mu.Lock()
	fl, ok := c.listeners[l]
	delete(c.listeners, l)
	c.mu.Unlock()

	if ok {
		c.external.Unsubscribe(Source, fl)
	}
}

// Subscribe 注册原始事件监听者
func (c *Coordinator) Subscribe(l interfaces.EventListener) {
	c.external.Subscribe(Source, l)
}

// Unsubscribe 注销原始事件监听者
func (c *Coordinator) Unsubscribe(l interfaces.EventListener) {
	c.external.Unsubscribe(Source, l)
}

// dispatchToListener 将事件翻译为 SessionListener 回调
func dispatchToListener(l interfaces.SessionListener, evt types.Event) {
	switch e := evt.(type) {
	case *types.EvtConnectionReady:
		l.OnConnectionReady()
	case *types.EvtPeerFound:
		l.OnPeerFound(e.Roster.Clone())
	case *types.EvtPeerSearchFinished:
		l.OnPeerSearchFinished(e.Roster.Clone())
	case *types.EvtMessageReceived:
		l.OnMessageReceived(e.SenderID, e.SenderName, e.Payload)
	}
}
