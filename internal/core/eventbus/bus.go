package eventbus

import (
	"sort"
	"sync"

	"github.com/dep2p/go-lobby/pkg/lib/log"
	"github.com/dep2p/go-lobby/pkg/types"
)

var logger = log.Logger("core/eventbus")

// ============================================================================
//                              Bus 实现
// ============================================================================

// Bus 事件总线
type Bus struct {
	lock  sync.RWMutex
	nodes map[string]*node
}

// node 单个来源的监听者列表
type node struct {
	lk        sync.Mutex
	listeners []Listener
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{
		nodes: make(map[string]*node),
	}
}

// withNode 获取或创建来源节点并在其锁内执行 fn
func (b *Bus) withNode(source string, fn func(n *node)) {
	b.lock.Lock()
	n, ok := b.nodes[source]
	if !ok {
		n = &node{}
		b.nodes[source] = n
	}
	n.lk.Lock()
	b.lock.Unlock()

	defer n.lk.Unlock()
	fn(n)
}

// tryNode 获取已存在的来源节点
func (b *Bus) tryNode(source string) *node {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.nodes[source]
}

// Subscribe 订阅来源的事件
//
// 同一监听者重复订阅同一来源无效果。
func (b *Bus) Subscribe(source string, l Listener) {
	if l == nil {
		return
	}
	b.withNode(source, func(n *node) {
		for _, existing := range n.listeners {
			if existing == l {
				return
			}
		}
		n.listeners = append(n.listeners, l)
	})
}

// Unsubscribe 取消订阅
//
// 未订阅的监听者无效果。来源上最后一个监听者移除后，来源节点被回收。
func (b *Bus) Unsubscribe(source string, l Listener) {
	b.lock.Lock()
	defer b.lock.Unlock()

	n, ok := b.nodes[source]
	if !ok {
		return
	}

	n.lk.Lock()
	for i, existing := range n.listeners {
		if existing == l {
			n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
			break
		}
	}
	empty := len(n.listeners) == 0
	n.lk.Unlock()

	if empty {
		delete(b.nodes, source)
	}
}

// Publish 发布事件
//
// 在锁内复制监听者快照，锁外按逆序同步调用。
func (b *Bus) Publish(source string, evt types.Event) {
	n := b.tryNode(source)
	if n == nil {
		return
	}

	n.lk.Lock()
	snapshot := make([]Listener, len(n.listeners))
	copy(snapshot, n.listeners)
	n.lk.Unlock()

	for i := len(snapshot) - 1; i >= 0; i-- {
		b.deliver(source, snapshot[i], evt)
	}
}

// deliver 调用单个监听者并恢复 panic
func (b *Bus) deliver(source string, l Listener, evt types.Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("事件监听者 panic", "source", source, "event", evt.Type(), "panic", r)
		}
	}()
	l.HandleEvent(evt)
}

// Count 返回来源上的监听者数量
func (b *Bus) Count(source string) int {
	n := b.tryNode(source)
	if n == nil {
		return 0
	}
	n.lk.Lock()
	defer n.lk.Unlock()
	return len(n.listeners)
}

// Sources 返回当前有监听者的来源（已排序）
func (b *Bus) Sources() []string {
	b.lock.RLock()
	defer b.lock.RUnlock()

	out := make([]string, 0, len(b.nodes))
	for source := range b.nodes {
		out = append(out, source)
	}
	sort.Strings(out)
	return out
}

// Reset 移除所有监听者
func (b *Bus) Reset() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.nodes = make(map[string]*node)
}
