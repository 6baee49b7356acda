package memnet

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dep2p/go-lobby/internal/overlay/cache"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/types"
)

// Counters 调用计数
type Counters struct {
	PublishLocal  int64
	PublishRemote int64
	QueryLocal    int64
	QueryRemote   int64
	PipeSend      int64
}

// Network 返回涉及网络 I/O 的调用次数
func (c Counters) Network() int64 {
	return c.PublishRemote + c.QueryRemote + c.PipeSend
}

// Node 网络中的一个节点
type Node struct {
	net   *Network
	local types.PeerRecord
	store cache.Store

	mu        sync.Mutex
	started   bool
	listeners []interfaces.DiscoveryListener
	inbound   map[types.ChannelID][]*inboundPipe

	startErr     error
	queryErr     error
	sendRejected bool

	publishLocal  atomic.Int64
	publishRemote atomic.Int64
	queryLocal    atomic.Int64
	queryRemote   atomic.Int64
	pipeSend      atomic.Int64
}

var (
	_ interfaces.Directory      = (*Node)(nil)
	_ interfaces.ChannelService = (*Node)(nil)
)

// ============================================================================
//                              故障注入与计数
// ============================================================================

// SetStartError 设置 Start 返回的错误
func (n *Node) SetStartError(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.startErr = err
}

// SetQueryError 设置 QueryLocal / QueryRemote 返回的错误
func (n *Node) SetQueryError(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queryErr = err
}

// SetSendRejected 设置出站端点是否拒绝发送
func (n *Node) SetSendRejected(rejected bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sendRejected = rejected
}

// Counters 返回调用计数快照
func (n *Node) Counters() Counters {
	return Counters{
		PublishLocal:  n.publishLocal.Load(),
		PublishRemote: n.publishRemote.Load(),
		QueryLocal:    n.queryLocal.Load(),
		QueryRemote:   n.queryRemote.Load(),
		PipeSend:      n.pipeSend.Load(),
	}
}

// Started 检查节点是否已启动
func (n *Node) Started() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.started
}

// ============================================================================
//                              Directory 实现
// ============================================================================

// Start 实现 interfaces.Directory
func (n *Node) Start(_ context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.startErr != nil {
		return n.startErr
	}
	n.started = true
	return nil
}

// Stop 实现 interfaces.Directory
func (n *Node) Stop(_ context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.started = false
	n.inbound = make(map[types.ChannelID][]*inboundPipe)
	return nil
}

// LocalPeer 实现 interfaces.Directory
func (n *Node) LocalPeer() types.PeerRecord {
	return n.local
}

// PublishLocal 实现 interfaces.Directory
func (n *Node) PublishLocal(adv types.Advertisement, lifetime, expiration time.Duration) error {
	n.publishLocal.Add(1)
	adv.Expiration = expiration
	return n.store.Put(adv, lifetime)
}

// PublishRemote 实现 interfaces.Directory
func (n *Node) PublishRemote(adv types.Advertisement, expiration time.Duration) error {
	n.publishRemote.Add(1)
	if !n.Started() {
		return ErrNotStarted
	}

	adv.Expiration = expiration
	n.net.async(func() {
		for _, peer := range n.net.peers(n.local.ID) {
			_ = peer.store.Put(adv, expiration)
		}
	})
	return nil
}

// QueryLocal 实现 interfaces.Directory
func (n *Node) QueryLocal(kind types.AdvKind, attr, value string) ([]types.Advertisement, error) {
	n.queryLocal.Add(1)
	n.mu.Lock()
	err := n.queryErr
	n.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return n.store.Query(kind, attr, value, 0)
}

// QueryRemote 实现 interfaces.Directory
func (n *Node) QueryRemote(kind types.AdvKind, attr, value string, maxResults int) error {
	n.queryRemote.Add(1)
	n.mu.Lock()
	err := n.queryErr
	started := n.started
	n.mu.Unlock()
	if err != nil {
		return err
	}
	if !started {
		return ErrNotStarted
	}

	n.net.async(func() {
		for _, peer := range n.net.peers(n.local.ID) {
			advs, err := peer.store.Query(kind, attr, value, maxResults)
			if err != nil || len(advs) == 0 {
				continue
			}
			for _, adv := range advs {
				_ = n.store.Put(adv, adv.Expiration)
			}
			n.deliver(interfaces.DiscoveryResponse{From: peer.local.ID, Kind: kind, Advertisements: advs})
		}
	})
	return nil
}

// deliver 将应答交给发现回调
func (n *Node) deliver(resp interfaces.DiscoveryResponse) {
	n.mu.Lock()
	if !n.started {
		n.mu.Unlock()
		return
	}
	listeners := make([]interfaces.DiscoveryListener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	for _, l := range listeners {
		l.DiscoveryEvent(resp)
	}
}

// FlushLocal 实现 interfaces.Directory
func (n *Node) FlushLocal(kind types.AdvKind) error {
	return n.store.Flush(kind)
}

// AddDiscoveryListener 实现 interfaces.Directory
func (n *Node) AddDiscoveryListener(l interfaces.DiscoveryListener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, existing := range n.listeners {
		if existing == l {
			return
		}
	}
	n.listeners = append(n.listeners, l)
}

// RemoveDiscoveryListener 实现 interfaces.Directory
func (n *Node) RemoveDiscoveryListener(l interfaces.DiscoveryListener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, existing := range n.listeners {
		if existing == l {
			n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
			return
		}
	}
}

// ============================================================================
//                              ChannelService 实现
// ============================================================================

// inboundPipe 入站端点
type inboundPipe struct {
	node      *Node
	channel   types.ChannelID
	onMessage func(types.ChannelMessage)
}

// Close 实现 interfaces.InboundPipe
func (p *inboundPipe) Close() error {
	n := p.node
	n.mu.Lock()
	defer n.mu.Unlock()

	pipes := n.inbound[p.channel]
	for i, existing := range pipes {
		if existing == p {
			n.inbound[p.channel] = append(pipes[:i:i], pipes[i+1:]...)
			break
		}
	}
	return nil
}

// outboundPipe 出站端点
type outboundPipe struct {
	node    *Node
	channel types.ChannelID
	closed  atomic.Bool
}

// Send 实现 interfaces.OutboundPipe
func (p *outboundPipe) Send(msg types.ChannelMessage) (bool, error) {
	n := p.node
	n.pipeSend.Add(1)
	if p.closed.Load() {
		return false, ErrPipeClosed
	}

	n.mu.Lock()
	rejected := n.sendRejected
	started := n.started
	n.mu.Unlock()
	if !started {
		return false, ErrNotStarted
	}
	if rejected {
		return false, nil
	}

	n.net.async(func() {
		for _, node := range n.net.Nodes() {
			for _, pipe := range node.pipes(p.channel) {
				pipe.onMessage(msg)
			}
		}
	})
	return true, nil
}

// Close 实现 interfaces.OutboundPipe
func (p *outboundPipe) Close() error {
	p.closed.Store(true)
	return nil
}

// pipes 返回已启动节点在通道上的入站端点快照
func (n *Node) pipes(channel types.ChannelID) []*inboundPipe {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.started {
		return nil
	}
	out := make([]*inboundPipe, len(n.inbound[channel]))
	copy(out, n.inbound[channel])
	return out
}

// OpenInbound 实现 interfaces.ChannelService
func (n *Node) OpenInbound(spec types.ChannelSpec, onMessage func(types.ChannelMessage)) (interfaces.InboundPipe, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.started {
		return nil, ErrNotStarted
	}
	p := &inboundPipe{node: n, channel: spec.ID, onMessage: onMessage}
	n.inbound[spec.ID] = append(n.inbound[spec.ID], p)
	return p, nil
}

// OpenOutbound 实现 interfaces.ChannelService
func (n *Node) OpenOutbound(spec types.ChannelSpec, onReady func(interfaces.OutboundPipe)) error {
	if !n.Started() {
		return ErrNotStarted
	}
	p := &outboundPipe{node: n, channel: spec.ID}
	n.net.async(func() {
		onReady(p)
	})
	return nil
}
