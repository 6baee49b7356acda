package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lobby "github.com/dep2p/go-lobby"
	"github.com/dep2p/go-lobby/config"
	"github.com/dep2p/go-lobby/internal/overlay/memnet"
	"github.com/dep2p/go-lobby/pkg/types"
)

// syncBuffer 并发安全的输出缓冲
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

func newTestConsole(t *testing.T, node *memnet.Node) (*console, *syncBuffer) {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Search.Period = config.Duration(10 * time.Millisecond)
	cfg.Search.FirstDelay = config.Duration(5 * time.Millisecond)
	cfg.Search.MaxAttempts = 3
	cfg.Storage.Backend = config.StorageMemory
	cfg.Metrics.Enable = false

	buf := &syncBuffer{}
	ui := newConsole(buf)
	sess, err := lobby.New(lobby.WithConfig(cfg), lobby.WithDirectory(node, node), lobby.WithListener(ui))
	require.NoError(t, err)
	ui.session = sess
	t.Cleanup(func() { _ = sess.Close(context.Background()) })
	return ui, buf
}

func TestConsole_NotReady(t *testing.T) {
	net := memnet.NewNetwork()
	ui, buf := newTestConsole(t, net.NewNode("urn:lobby:peer:a", "alice"))

	assert.True(t, ui.handle("/search"))
	assert.Contains(t, buf.String(), "会话尚未就绪")

	buf.Reset()
	assert.True(t, ui.handle("/search ali ce"))
	assert.Contains(t, buf.String(), "过滤词只能包含")

	buf.Reset()
	assert.True(t, ui.handle("/peers"))
	assert.Contains(t, buf.String(), "暂无节点")

	buf.Reset()
	assert.True(t, ui.handle("/send"))
	assert.Contains(t, buf.String(), "用法")

	assert.False(t, ui.handle("/quit"))
}

func TestConsole_MessageByName(t *testing.T) {
	net := memnet.NewNetwork()
	alice, _ := newTestConsole(t, net.NewNode("urn:lobby:peer:a", "alice"))
	bob, bobOut := newTestConsole(t, net.NewNode("urn:lobby:peer:b", "bob"))

	ctx := context.Background()
	require.NoError(t, alice.session.Start(ctx))
	require.Eventually(t, alice.session.IsReady, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, bob.session.Start(ctx))
	require.Eventually(t, bob.session.IsReady, 2*time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		_ = alice.session.SearchPeers()
		_, ok := alice.session.Peers().FindByName("bob")
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	assert.True(t, alice.handle("/msg bob hello"))
	assert.Eventually(t, func() bool {
		return strings.Contains(bobOut.String(), "alice [a]: hello")
	}, 2*time.Second, 5*time.Millisecond)
}

func TestConsole_ResolvePeer(t *testing.T) {
	net := memnet.NewNetwork()
	ui, _ := newTestConsole(t, net.NewNode("urn:lobby:peer:a", "alice"))

	// 未就绪时花名册为空，原样返回
	assert.Equal(t, types.PeerID("xyz"), ui.resolvePeer("xyz"))
}
