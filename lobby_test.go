package lobby

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-lobby/config"
	"github.com/dep2p/go-lobby/internal/overlay/memnet"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
// 辅助
// ════════════════════════════════════════════════════════════════════════════

func fastConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Search.Period = config.Duration(10 * time.Millisecond)
	cfg.Search.FirstDelay = config.Duration(5 * time.Millisecond)
	cfg.Search.MaxAttempts = 3
	cfg.Storage.Backend = config.StorageMemory
	return cfg
}

// inbox 记录收到的消息
type inbox struct {
	interfaces.NopSessionListener

	mu       sync.Mutex
	messages []string
}

func (i *inbox) OnMessageReceived(_ types.PeerID, senderName, payload string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.messages = append(i.messages, senderName+": "+payload)
}

func (i *inbox) all() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.messages...)
}

func newSession(t *testing.T, node *memnet.Node, opts ...Option) *Session {
	t.Helper()
	base := []Option{WithConfig(fastConfig()), WithDirectory(node, node)}
	s, err := New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

// ════════════════════════════════════════════════════════════════════════════
// 测试
// ════════════════════════════════════════════════════════════════════════════

// TestSession_Hello 测试两个会话互相发现并收发消息
func TestSession_Hello(t *testing.T) {
	net := memnet.NewNetwork()
	a := net.NewNode("urn:a", "alice")
	b := net.NewNode("urn:b", "bob")

	boxA, boxB := &inbox{}, &inbox{}
	sa := newSession(t, a, WithListener(boxA))
	sb := newSession(t, b, WithListener(boxB))

	ctx := context.Background()
	require.NoError(t, sa.Start(ctx))
	require.NoError(t, sb.Start(ctx))
	require.Eventually(t, func() bool { return sa.IsReady() && sb.IsReady() }, 3*time.Second, 5*time.Millisecond)

	ga, _ := sa.ResolvedGroup()
	gb, _ := sb.ResolvedGroup()
	assert.Equal(t, ga.ID, gb.ID)
	assert.Equal(t, types.GroupID(config.DefaultGroupID), ga.ID)

	require.True(t, sa.SendMessage(sb.LocalPeer().ID, "hello"))
	require.Eventually(t, func() bool { return len(boxB.all()) == 1 }, 3*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"alice: hello"}, boxB.all())

	net.Wait()
	assert.Empty(t, boxA.all())
}

// TestSession_Lifecycle 测试启动、停止与关闭
func TestSession_Lifecycle(t *testing.T) {
	net := memnet.NewNetwork()
	a := net.NewNode("urn:a", "alice")
	s := newSession(t, a)
	ctx := context.Background()

	assert.Equal(t, types.SessionIdle, s.State())
	assert.ErrorIs(t, s.SearchPeers(), ErrNotReady)
	assert.ErrorIs(t, s.SearchPeersFiltered("ali ce"), ErrInvalidFilter)

	require.NoError(t, s.Start(ctx))
	require.Eventually(t, s.IsReady, 3*time.Second, 5*time.Millisecond)

	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
	assert.Equal(t, types.SessionIdle, s.State())

	require.NoError(t, s.Start(ctx))
	require.Eventually(t, s.IsReady, 3*time.Second, 5*time.Millisecond)

	require.NoError(t, s.Close(ctx))
	require.NoError(t, s.Close(ctx))
	assert.ErrorIs(t, s.Start(ctx), ErrClosed)
}

// TestSession_Metrics 测试指标写入指定注册表
func TestSession_Metrics(t *testing.T) {
	net := memnet.NewNetwork()
	a := net.NewNode("urn:a", "alice")
	reg := prometheus.NewRegistry()
	s := newSession(t, a, WithMetricsRegistry(reg))

	require.NoError(t, s.Start(context.Background()))
	require.Eventually(t, s.IsReady, 3*time.Second, 5*time.Millisecond)

	assert.Same(t, reg, s.Gatherer())
	count, err := testutil.GatherAndCount(reg, "lobby_groups_resolved_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestNew_Options 测试选项校验
func TestNew_Options(t *testing.T) {
	_, err := New(WithPeerName(""))
	assert.Error(t, err)

	_, err = New(WithDirectory(nil, nil))
	assert.ErrorIs(t, err, ErrIncompleteDirectory)

	bad := config.NewConfig()
	bad.Search.MaxAttempts = 0
	_, err = New(WithConfig(bad))
	assert.Error(t, err)
}

// TestSession_ConfigCopy 测试返回的配置是副本
func TestSession_ConfigCopy(t *testing.T) {
	net := memnet.NewNetwork()
	a := net.NewNode("urn:a", "alice")
	s := newSession(t, a, WithPeerName("alice"), WithQueueSearchUntilReady(true))

	cfg := s.Config()
	assert.Equal(t, "alice", cfg.Identity.PeerName)
	assert.True(t, cfg.Session.QueueSearchUntilReady)

	cfg.Identity.PeerName = "mallory"
	assert.Equal(t, "alice", s.Config().Identity.PeerName)
}

// TestVersionInfo 测试版本信息
func TestVersionInfo(t *testing.T) {
	assert.Contains(t, VersionInfo(), Version)
}

// TestSession_Subscribe 测试通过公共接口订阅原始事件
func TestSession_Subscribe(t *testing.T) {
	net := memnet.NewNetwork()
	s := newSession(t, net.NewNode("urn:a", "alice"))

	var mu sync.Mutex
	var seen []string
	var l interfaces.EventListener = ListenerFunc(func(evt types.Event) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, evt.Type())
	})
	s.Subscribe(l)

	require.NoError(t, s.Start(context.Background()))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, typ := range seen {
			if typ == types.EventConnectionReady {
				return true
			}
		}
		return false
	}, 3*time.Second, 5*time.Millisecond)

	// 注销后 Stop 发布的状态变化不再送达
	s.Unsubscribe(l)
	require.NoError(t, s.Stop(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	changes := 0
	for _, typ := range seen {
		if typ == types.EventStateChanged {
			changes++
		}
	}
	assert.Equal(t, 2, changes, "只应看到 Idle→Connecting 与 Connecting→Ready")
}
