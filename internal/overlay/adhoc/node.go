package adhoc

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/multierr"
	"golang.org/x/net/ipv4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/dep2p/go-lobby/internal/core/metrics"
	"github.com/dep2p/go-lobby/internal/overlay/cache"
	"github.com/dep2p/go-lobby/internal/overlay/wire"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/lib/log"
	"github.com/dep2p/go-lobby/pkg/types"
)

var logger = log.Logger("overlay/adhoc")

// Option 节点选项
type Option func(*Node)

// WithMetrics 设置指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Node) {
		n.metrics = m
	}
}

// Node adhoc 覆盖网络节点
//
// 同时实现 interfaces.Directory 与 interfaces.ChannelService。
type Node struct {
	cfg     Config
	store   cache.Store
	metrics *metrics.Metrics
	local   types.PeerRecord

	seen    *lru.Cache[string, struct{}]
	limiter *rate.Limiter

	// write 发送原始报文，测试中可替换
	write func([]byte) error

	mu        sync.Mutex
	running   bool
	listeners []interfaces.DiscoveryListener
	inbound   map[types.ChannelID][]*inboundPipe

	groupAddr *net.UDPAddr
	recvConn  *net.UDPConn
	sendConn  *net.UDPConn
	cancel    context.CancelFunc
	eg        *errgroup.Group
	pending   sync.WaitGroup
}

var (
	_ interfaces.Directory      = (*Node)(nil)
	_ interfaces.ChannelService = (*Node)(nil)
)

// New 创建节点
//
// 节点 ID 从 store 元数据读取，不存在时签发新 ID 并写回。
func New(cfg Config, store cache.Store, opts ...Option) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	id, err := loadIdentity(store)
	if err != nil {
		return nil, err
	}

	seen, err := lru.New[string, struct{}](cfg.DedupSize)
	if err != nil {
		return nil, fmt.Errorf("adhoc: create dedup cache: %w", err)
	}

	n := &Node{
		cfg:     cfg,
		store:   store,
		local:   types.PeerRecord{ID: id, DisplayName: cfg.PeerName},
		seen:    seen,
		limiter: rate.NewLimiter(rate.Limit(cfg.QueryRate), cfg.QueryBurst),
		inbound: make(map[types.ChannelID][]*inboundPipe),
	}
	n.write = n.writeUDP
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// loadIdentity 读取或签发节点 ID
func loadIdentity(store cache.Store) (types.PeerID, error) {
	v, ok, err := store.Meta(metaPeerID)
	if err != nil {
		return "", fmt.Errorf("adhoc: load identity: %w", err)
	}
	if ok && v != "" {
		return types.PeerID(v), nil
	}

	id := "urn:lobby:peer:" + uuid.New().String()
	if err := store.SetMeta(metaPeerID, id); err != nil {
		return "", fmt.Errorf("adhoc: save identity: %w", err)
	}
	logger.Info("签发节点身份", "peer", id)
	return types.PeerID(id), nil
}

// ============================================================================
//                              生命周期
// ============================================================================

// Start 实现 interfaces.Directory
//
// 加入组播组并启动读循环。重复调用无效果。
func (n *Node) Start(_ context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.running {
		return nil
	}

	groupAddr, recvConn, sendConn, err := openSockets(n.cfg)
	if err != nil {
		return err
	}

	// 读循环的生命周期与节点一致，不跟随调用方的 ctx
	ctx, cancel := context.WithCancel(context.Background())
	eg, ctx := errgroup.WithContext(ctx)

	n.groupAddr = groupAddr
	n.recvConn = recvConn
	n.sendConn = sendConn
	n.cancel = cancel
	n.eg = eg
	n.running = true

	eg.Go(func() error {
		return n.readLoop(ctx, recvConn)
	})

	logger.Info("加入组播组", "group", groupAddr.String(), "peer", n.local.ID.ShortString())
	return nil
}

// openSockets 打开接收与发送套接字
func openSockets(cfg Config) (*net.UDPAddr, *net.UDPConn, *net.UDPConn, error) {
	groupAddr, err := net.ResolveUDPAddr("udp4", cfg.Group)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("adhoc: resolve group: %w", err)
	}

	var iface *net.Interface
	if cfg.Interface != "" {
		iface, err = net.InterfaceByName(cfg.Interface)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("adhoc: interface %q: %w", cfg.Interface, err)
		}
	}

	recvConn, err := net.ListenMulticastUDP("udp4", iface, groupAddr)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("adhoc: listen multicast: %w", err)
	}
	_ = recvConn.SetReadBuffer(MaxPacketSize * 16)

	sendConn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		recvConn.Close()
		return nil, nil, nil, fmt.Errorf("adhoc: open send socket: %w", err)
	}

	pc := ipv4.NewPacketConn(sendConn)
	err = multierr.Combine(
		pc.SetMulticastLoopback(true),
		pc.SetMulticastTTL(cfg.TTL),
	)
	if err == nil && iface != nil {
		err = pc.SetMulticastInterface(iface)
	}
	if err != nil {
		recvConn.Close()
		sendConn.Close()
		return nil, nil, nil, fmt.Errorf("adhoc: configure multicast: %w", err)
	}

	return groupAddr, recvConn, sendConn, nil
}

// Stop 实现 interfaces.Directory
//
// 关闭套接字、等待读循环退出并关闭所有入站端点。
func (n *Node) Stop(_ context.Context) error {
	n.mu.Lock()
	if !n.running {
		n.mu.Unlock()
		return nil
	}
	n.running = false
	n.cancel()
	recvConn, sendConn, eg := n.recvConn, n.sendConn, n.eg
	n.recvConn, n.sendConn, n.eg = nil, nil, nil
	n.inbound = make(map[types.ChannelID][]*inboundPipe)
	n.mu.Unlock()

	err := multierr.Combine(
		closeConn(recvConn),
		closeConn(sendConn),
	)
	if eg != nil {
		err = multierr.Append(err, eg.Wait())
	}
	n.pending.Wait()

	logger.Info("离开组播组", "peer", n.local.ID.ShortString())
	return err
}

func closeConn(c *net.UDPConn) error {
	if c == nil {
		return nil
	}
	return c.Close()
}

// Running 检查是否在运行
func (n *Node) Running() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.running
}

// ============================================================================
//                              Directory 实现
// ============================================================================

// LocalPeer 实现 interfaces.Directory
func (n *Node) LocalPeer() types.PeerRecord {
	return n.local
}

// PublishLocal 实现 interfaces.Directory
func (n *Node) PublishLocal(adv types.Advertisement, lifetime, expiration time.Duration) error {
	adv.Expiration = expiration
	return n.store.Put(adv, lifetime)
}

// PublishRemote 实现 interfaces.Directory
func (n *Node) PublishRemote(adv types.Advertisement, expiration time.Duration) error {
	adv.Expiration = expiration
	return n.send(&wire.Envelope{
		Type: wire.TypePublish,
		Advs: []types.Advertisement{adv},
	})
}

// QueryLocal 实现 interfaces.Directory
func (n *Node) QueryLocal(kind types.AdvKind, attr, value string) ([]types.Advertisement, error) {
	return n.store.Query(kind, attr, value, 0)
}

// QueryRemote 实现 interfaces.Directory
func (n *Node) QueryRemote(kind types.AdvKind, attr, value string, maxResults int) error {
	if !n.limiter.Allow() {
		return ErrRateLimited
	}
	if maxResults < 0 {
		maxResults = 0
	}
	return n.send(&wire.Envelope{
		Type:  wire.TypeQuery,
		Query: &wire.Query{Kind: kind, Attr: attr, Value: value, Max: maxResults},
	})
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
