package channel

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-lobby/internal/core/eventbus"
	"github.com/dep2p/go-lobby/internal/core/metrics"
	"github.com/dep2p/go-lobby/internal/overlay/memnet"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/types"
)

// ============================================================================
// 辅助
// ============================================================================

var testSpec = types.ChannelSpec{ID: "urn:lobby:pipe:test", Name: "TestPipe", Type: types.ChannelTypePropagate}

// eventLog 记录通道事件
type eventLog struct {
	mu       sync.Mutex
	ready    int
	messages []*types.EvtMessageReceived
}

func (l *eventLog) HandleEvent(evt types.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch e := evt.(type) {
	case *types.EvtChannelReady:
		l.ready++
	case *types.EvtMessageReceived:
		l.messages = append(l.messages, e)
	}
}

func (l *eventLog) readyCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready
}

func (l *eventLog) received() []*types.EvtMessageReceived {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*types.EvtMessageReceived, len(l.messages))
	copy(out, l.messages)
	return out
}

func newChannel(t *testing.T, svc interfaces.ChannelService, local types.PeerRecord, opts ...Option) (*Channel, *eventLog) {
	t.Helper()
	bus := eventbus.NewBus()
	events := &eventLog{}
	bus.Subscribe(Source, events)

	c, err := New(testSpec, svc, local, bus, nil, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, events
}

func openedPair(t *testing.T) (*memnet.Network, *memnet.Node, *memnet.Node) {
	t.Helper()
	net := memnet.NewNetwork()
	a := net.NewNode("urn:a", "alice")
	b := net.NewNode("urn:b", "bob")
	require.NoError(t, a.Start(context.Background()))
	require.NoError(t, b.Start(context.Background()))
	return net, a, b
}

// fakePipe 记录关闭的出站端点
type fakePipe struct {
	closed atomic.Bool
}

func (p *fakePipe) Send(types.ChannelMessage) (bool, error) { return true, nil }
func (p *fakePipe) Close() error                          { p.closed.Store(true); return nil }

// fakeService 保存就绪回调，由测试决定何时就绪
type fakeService struct {
	mu      sync.Mutex
	onReady func(interfaces.OutboundPipe)
}

func (s *fakeService) OpenInbound(types.ChannelSpec, func(types.ChannelMessage)) (interfaces.InboundPipe, error) {
	return &fakePipe{}, nil
}

func (s *fakeService) OpenOutbound(_ types.ChannelSpec, onReady func(interfaces.OutboundPipe)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReady = onReady
	return nil
}

func (s *fakeService) fireReady(p interfaces.OutboundPipe) {
	s.mu.Lock()
	fn := s.onReady
	s.mu.Unlock()
	fn(p)
}

// ============================================================================
// 收发测试
// ============================================================================

// TestChannel_SendHello 测试 A 发给 B 的消息只被 B 接受
func TestChannel_SendHello(t *testing.T) {
	net, a, b := openedPair(t)

	ca, ea := newChannel(t, a, a.LocalPeer())
	cb, eb := newChannel(t, b, b.LocalPeer())
	require.NoError(t, ca.Open())
	require.NoError(t, cb.Open())
	require.Eventually(t, func() bool { return ca.Ready() && cb.Ready() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, ea.readyCount())

	require.True(t, ca.Send("urn:b", "hello"))
	net.Wait()

	got := eb.received()
	require.Len(t, got, 1)
	assert.Equal(t, types.PeerID("urn:a"), got[0].SenderID)
	assert.Equal(t, "alice", got[0].SenderName)
	assert.Equal(t, "hello", got[0].Payload)
	assert.Empty(t, ea.received())
}

// TestChannel_SendNotReady 测试出站未就绪时发送失败
func TestChannel_SendNotReady(t *testing.T) {
	svc := &fakeService{}
	c, _ := newChannel(t, svc, types.PeerRecord{ID: "urn:a", DisplayName: "alice"})
	require.NoError(t, c.Open())

	assert.False(t, c.Ready())
	assert.False(t, c.Send("urn:b", "hello"))
}

// TestChannel_SendRejected 测试传输层拒绝
func TestChannel_SendRejected(t *testing.T) {
	_, a, _ := openedPair(t)
	c, _ := newChannel(t, a, a.LocalPeer())
	require.NoError(t, c.Open())
	require.Eventually(t, c.Ready, time.Second, 5*time.Millisecond)

	a.SetSendRejected(true)
	assert.False(t, c.Send("urn:b", "hello"))
	assert.False(t, c.Send("", "hello"))

	a.SetSendRejected(false)
	assert.True(t, c.Send("urn:b", "hello"))
}

// TestChannel_InboundFilter 测试入站过滤
func TestChannel_InboundFilter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	self := types.PeerRecord{ID: "urn:a", DisplayName: "alice"}
	c, events := newChannel(t, &fakeService{}, self, WithMetrics(m))

	c.receive(types.NewChannelMessage(types.PeerRecord{ID: "urn:b", DisplayName: "bob"}, "urn:c", "not for me"))
	c.receive(types.NewChannelMessage(self, "urn:a", "own"))
	c.receive(types.ChannelMessage{ReceiverID: "urn:a", Payload: "anonymous"})
	assert.Empty(t, events.received())

	count, err := testutil.GatherAndCount(reg, "lobby_messages_dropped_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	c.receive(types.NewChannelMessage(types.PeerRecord{ID: "urn:b", DisplayName: "bob"}, "urn:a", ""))
	got := events.received()
	require.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].SenderName)
	assert.Empty(t, got[0].Payload)
}

// ============================================================================
// 生命周期测试
// ============================================================================

// TestChannel_LateReadyAfterClose 测试关闭后到达的端点被释放
func TestChannel_LateReadyAfterClose(t *testing.T) {
	svc := &fakeService{}
	c, events := newChannel(t, svc, types.PeerRecord{ID: "urn:a"})
	require.NoError(t, c.Open())
	require.NoError(t, c.Close())

	late := &fakePipe{}
	svc.fireReady(late)

	assert.True(t, late.closed.Load())
	assert.False(t, c.Ready())
	assert.Equal(t, 0, events.readyCount())
}

// TestChannel_CloseIdempotent 测试重复关闭与关闭后打开
func TestChannel_CloseIdempotent(t *testing.T) {
	svc := &fakeService{}
	c, _ := newChannel(t, svc, types.PeerRecord{ID: "urn:a"})
	require.NoError(t, c.Open())
	assert.ErrorIs(t, c.Open(), ErrAlreadyOpen)

	out := &fakePipe{}
	svc.fireReady(out)
	require.True(t, c.Ready())

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.True(t, out.closed.Load())
	assert.ErrorIs(t, c.Open(), ErrClosed)
	assert.False(t, c.Send("urn:b", "hello"))
}

// TestChannel_OpenFails 测试覆盖网络未启动时打开失败
func TestChannel_OpenFails(t *testing.T) {
	net := memnet.NewNetwork()
	a := net.NewNode("urn:a", "alice")
	c, _ := newChannel(t, a, a.LocalPeer())
	assert.ErrorIs(t, c.Open(), memnet.ErrNotStarted)
}

// TestNew_InvalidSpec 测试无效通道描述
func TestNew_InvalidSpec(t *testing.T) {
	_, err := New(types.ChannelSpec{}, &fakeService{}, types.PeerRecord{}, eventbus.NewBus(), nil)
	assert.ErrorIs(t, err, ErrInvalidSpec)
}
