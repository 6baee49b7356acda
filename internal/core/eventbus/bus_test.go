package eventbus

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-lobby/pkg/types"
)

// ============================================================================
// 基础功能测试
// ============================================================================

// recorder 记录收到事件的监听者
type recorder struct {
	name  string
	mu    *sync.Mutex
	order *[]string
}

func (r *recorder) HandleEvent(types.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.order = append(*r.order, r.name)
}

// TestBus_ReverseOrder 测试按注册逆序分发
func TestBus_ReverseOrder(t *testing.T) {
	bus := NewBus()
	var mu sync.Mutex
	var order []string

	a := &recorder{name: "a", mu: &mu, order: &order}
	b := &recorder{name: "b", mu: &mu, order: &order}
	c := &recorder{name: "c", mu: &mu, order: &order}
	bus.Subscribe("peers", a)
	bus.Subscribe("peers", b)
	bus.Subscribe("peers", c)

	bus.Publish("peers", types.NewEvtPeerFound(nil))

	assert.Equal(t, []string{"c", "b", "a"}, order)
}

// TestBus_SubscribeIdempotent 测试重复订阅与取消订阅
func TestBus_SubscribeIdempotent(t *testing.T) {
	bus := NewBus()
	var calls atomic.Int32
	l := ListenerFunc(func(types.Event) { calls.Add(1) })

	bus.Subscribe("group", l)
	bus.Subscribe("group", l)
	assert.Equal(t, 1, bus.Count("group"))

	bus.Publish("group", types.NewEvtGroupFound(nil))
	assert.Equal(t, int32(1), calls.Load())

	bus.Unsubscribe("group", l)
	bus.Unsubscribe("group", l)
	assert.Equal(t, 0, bus.Count("group"))
	assert.Empty(t, bus.Sources())

	bus.Publish("group", types.NewEvtGroupFound(nil))
	assert.Equal(t, int32(1), calls.Load())
}

// TestBus_SourcesIsolated 测试来源隔离
func TestBus_SourcesIsolated(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.Subscribe("channel", ListenerFunc(func(evt types.Event) { got = append(got, evt.Type()) }))
	bus.Subscribe("peers", ListenerFunc(func(types.Event) {}))

	bus.Publish("peers", types.NewEvtPeerFound(nil))
	bus.Publish("channel", types.NewEvtChannelReady(types.ChannelSpec{}))

	assert.Equal(t, []string{types.EventChannelReady}, got)
	assert.Equal(t, []string{"channel", "peers"}, bus.Sources())
}

// ============================================================================
// 快照语义测试
// ============================================================================

// TestBus_SnapshotDuringDispatch 测试分发中增删监听者不影响本次分发
func TestBus_SnapshotDuringDispatch(t *testing.T) {
	bus := NewBus()
	var lateCalls, firstCalls atomic.Int32

	late := ListenerFunc(func(types.Event) { lateCalls.Add(1) })
	var first *FuncListener
	first = ListenerFunc(func(types.Event) {
		firstCalls.Add(1)
		bus.Unsubscribe("s", first)
	})
	// 逆序分发：adder 先执行，随后 first 仍在快照内
	adder := ListenerFunc(func(types.Event) {
		bus.Subscribe("s", late)
	})
	bus.Subscribe("s", first)
	bus.Subscribe("s", adder)

	bus.Publish("s", types.NewBaseEvent("test"))
	assert.Equal(t, int32(0), lateCalls.Load())
	assert.Equal(t, int32(1), firstCalls.Load())

	bus.Publish("s", types.NewBaseEvent("test"))
	assert.Equal(t, int32(1), lateCalls.Load())
	assert.Equal(t, int32(1), firstCalls.Load())
}

// TestBus_PanicRecovered 测试监听者 panic 不影响其他监听者
func TestBus_PanicRecovered(t *testing.T) {
	bus := NewBus()
	var calls atomic.Int32

	bus.Subscribe("s", ListenerFunc(func(types.Event) { calls.Add(1) }))
	bus.Subscribe("s", ListenerFunc(func(types.Event) { panic("boom") }))

	require.NotPanics(t, func() {
		bus.Publish("s", types.NewBaseEvent("test"))
	})
	assert.Equal(t, int32(1), calls.Load())
}

// TestBus_ConcurrentAccess 测试并发订阅与发布
func TestBus_ConcurrentAccess(t *testing.T) {
	bus := NewBus()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			l := ListenerFunc(func(types.Event) {})
			bus.Subscribe("s", l)
			bus.Unsubscribe("s", l)
		}()
		go func() {
			defer wg.Done()
			bus.Publish("s", types.NewBaseEvent("test"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, bus.Count("s"))
}

// TestBus_Reset 测试清空
func TestBus_Reset(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("a", ListenerFunc(func(types.Event) {}))
	bus.Reset()
	assert.Empty(t, bus.Sources())
}
