package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	"github.com/dep2p/go-lobby/internal/channel"
	"github.com/dep2p/go-lobby/internal/core/dispatch"
	"github.com/dep2p/go-lobby/internal/core/eventbus"
	"github.com/dep2p/go-lobby/internal/core/metrics"
	"github.com/dep2p/go-lobby/internal/group"
	"github.com/dep2p/go-lobby/internal/peers"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/lib/log"
	"github.com/dep2p/go-lobby/pkg/types"
)

var logger = log.Logger("session")

// Option 协调器选项
type Option func(*Coordinator)

// WithPool 设置事件分发工作池；不设置时事件同步分发
func WithPool(pool *dispatch.Pool) Option {
	return func(c *Coordinator) {
		c.pool = pool
	}
}

// WithMetrics 设置指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

// WithClock 设置调度时钟
func WithClock(clk clock.Clock) Option {
	return func(c *Coordinator) {
		c.clock = clk
	}
}

// WithBus 设置外部事件总线
func WithBus(bus *eventbus.Bus) Option {
	return func(c *Coordinator) {
		if bus != nil {
			c.external = bus
		}
	}
}

// run 一次 Start 到 Stop 之间的全部组件
type run struct {
	bus      *eventbus.Bus
	resolver *group.Resolver
	peers    *peers.Directory
	channel  *channel.Channel
	group    types.GroupRecord

	// pending 就绪前排队的查找请求（过滤器）
	pending *string

	// autoSweep 当前扫描是群组确定后自动发起的初始扫描，用户请求可替换它
	autoSweep bool
}

// Coordinator 会话协调器
type Coordinator struct {
	cfg      Config
	dir      interfaces.Directory
	chsvc    interfaces.ChannelService
	pool     *dispatch.Pool
	metrics  *metrics.Metrics
	clock    clock.Clock
	external *eventbus.Bus

	mu        sync.Mutex
	state     types.SessionState
	phase     types.SessionPhase
	run       *run
	listeners map[interfaces.SessionListener]*eventbus.FuncListener
}

// New 创建协调器
func New(cfg Config, dir interfaces.Directory, chsvc interfaces.ChannelService, opts ...Option) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Channel.Type == "" {
		cfg.Channel.Type = types.ChannelTypePropagate
	}

	c := &Coordinator{
		cfg:       cfg,
		dir:       dir,
		chsvc:     chsvc,
		external:  eventbus.NewBus(),
		state:     types.SessionIdle,
		listeners: make(map[interfaces.SessionListener]*eventbus.FuncListener),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ============================================================================
//                              生命周期
// ============================================================================

// Start 启动覆盖网络并开始查找群组
//
// 非 Idle 状态下为空操作。覆盖网络启动失败时返回 ErrStartup，状态保持 Idle。
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case types.SessionStopped:
		c.mu.Unlock()
		return ErrClosed
	case types.SessionIdle:
	default:
		c.mu.Unlock()
		return nil
	}

	if err := c.dir.Start(ctx); err != nil {
		c.mu.Unlock()
		logger.Error("覆盖网络启动失败", "error", err)
		return fmt.Errorf("%w: %w", ErrStartup, err)
	}

	r := &run{bus: eventbus.NewBus()}
	opts := []group.Option{group.WithMetrics(c.metrics)}
	if c.clock != nil {
		opts = append(opts, group.WithClock(c.clock))
	}
	resolver, err := group.New(c.cfg.Resolver, c.dir, r.bus, c.pool, opts...)
	if err != nil {
		c.mu.Unlock()
		return multierr.Append(err, c.dir.Stop(ctx))
	}
	r.resolver = resolver
	c.subscribe(r)

	c.run = r
	c.state = types.SessionConnecting
	c.phase = types.PhaseGroupSearching
	c.mu.Unlock()

	c.publish(types.NewEvtStateChanged(types.SessionIdle, types.SessionConnecting))

	if err := resolver.Resolve(c.cfg.Group); err != nil {
		_ = c.Stop(ctx)
		return err
	}

	local := c.dir.LocalPeer()
	logger.Info("会话已启动", "peer", local.DisplayName, "group", c.cfg.Group.Name)
	return nil
}

// Stop 拆除全部组件并回到 Idle
//
// Idle 状态下为空操作。各组件的拆除错误合并返回。
func (c *Coordinator) Stop(ctx context.Context) error {
	c.mu.Lock()
	if c.state == types.SessionIdle || c.state == types.SessionStopped {
		c.mu.Unlock()
		return nil
	}
	from := c.state
	r := c.run
	c.run = nil
	c.state = types.SessionIdle
	c.phase = types.PhaseNone
	c.mu.Unlock()

	err := c.teardown(ctx, r)

	c.publish(types.NewEvtStateChanged(from, types.SessionIdle))
	logger.Info("会话已停止")
	return err
}

// teardown 拆除一次运行的组件
func (c *Coordinator) teardown(ctx context.Context, r *run) error {
	if r == nil {
		return nil
	}

	r.bus.Reset()
	r.resolver.Stop()

	var err error
	if r.peers != nil {
		r.peers.Stop()
	}
	if r.channel != nil {
		err = multierr.Append(err, r.channel.Close())
	}
	err = multierr.Append(err, c.dir.Stop(ctx))
	return err
}

// Close 停止并进入终态，之后 Start 返回 ErrClosed
func (c *Coordinator) Close(ctx context.Context) error {
	err := c.Stop(ctx)

	c.mu.Lock()
	if c.state == types.SessionStopped {
		c.mu.Unlock()
		return err
	}
	c.state = types.SessionStopped
	c.mu.Unlock()

	c.publish(types.NewEvtStateChanged(types.SessionIdle, types.SessionStopped))
	c.external.Reset()
	return err
}

// ============================================================================
//                              内部事件处理
// ============================================================================

// subscribe 在运行的内部总线上挂接处理函数
func (c *Coordinator) subscribe(r *run) {
	r.bus.Subscribe(group.Source, eventbus.ListenerFunc(func(evt types.Event) {
		c.onGroupEvent(r, evt)
	}))
	r.bus.Subscribe(peers.Source, eventbus.ListenerFunc(func(evt types.Event) {
		c.forward(r, evt)
	}))
	r.bus.Subscribe(channel.Source, eventbus.ListenerFunc(func(evt types.Event) {
		c.onChannelEvent(r, evt)
	}))
}

// current 检查 r 是否仍是当前运行
func (c *Coordinator) current(r *run) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.run == r
}

func (c *Coordinator) onGroupEvent(r *run, evt types.Event) {
	e, ok := evt.(*types.EvtResolvedGroup)
	if !ok {
		return
	}
	if err := c.groupResolved(r, e); err != nil {
		logger.Error("进入节点发现阶段失败", "error", err)
	}
}

// groupResolved 群组确定后创建节点目录与消息通道，并开始初始扫描
func (c *Coordinator) groupResolved(r *run, e *types.EvtResolvedGroup) error {
	local := c.dir.LocalPeer()

	c.mu.Lock()
	if c.run != r || r.peers != nil {
		c.mu.Unlock()
		return nil
	}

	popts := []peers.Option{peers.WithMetrics(c.metrics)}
	if c.clock != nil {
		popts = append(popts, peers.WithClock(c.clock))
	}
	dir, err := peers.New(c.cfg.Peers, c.dir, e.Group, c.cfg.Channel, r.bus, c.pool, popts...)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	ch, err := channel.New(c.cfg.Channel, c.chsvc, local, r.bus, c.pool, channel.WithMetrics(c.metrics))
	if err != nil {
		c.mu.Unlock()
		return err
	}
	r.group = e.Group
	r.peers = dir
	r.channel = ch
	// 就绪后到达的用户请求可替换即将启动的初始扫描
	r.autoSweep = true
	c.phase = types.PhasePeerDiscovery
	c.mu.Unlock()

	logger.Info("群组已确定", "group", e.Group.Name, "created", e.Created)
	c.publish(e)

	if err := dir.Start(); err != nil {
		logger.Warn("宣告本节点失败", "error", err)
	}
	if err := ch.Open(); err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	// 用户请求或排队请求已先行启动扫描时这里会失败，以它们为准
	if err := dir.Sweep(); err != nil {
		logger.Debug("初始节点扫描未启动", "error", err)
	}
	return nil
}

func (c *Coordinator) onChannelEvent(r *run, evt types.Event) {
	switch evt.(type) {
	case *types.EvtChannelReady:
		c.channelReady(r)
	case *types.EvtMessageReceived:
		c.forward(r, evt)
	}
}

// channelReady 通道就绪：进入 Ready 并执行排队的查找请求
func (c *Coordinator) channelReady(r *run) {
	c.mu.Lock()
	if c.run != r || c.state != types.SessionConnecting {
		c.mu.Unlock()
		return
	}
	c.state = types.SessionReady
	pending := r.pending
	r.pending = nil
	if pending != nil {
		r.autoSweep = false
	}
	g := r.group
	dir := r.peers
	c.mu.Unlock()

	c.publish(types.NewEvtStateChanged(types.SessionConnecting, types.SessionReady))
	logger.Info("会话已就绪", "group", g.Name)
	c.publish(types.NewEvtConnectionReady(g, c.dir.LocalPeer()))

	if pending != nil {
		// 排队的请求优先于初始扫描
		dir.StopSweep()
		if err := dir.SweepFiltered(*pending); err != nil {
			logger.Warn("排队的节点查找未启动", "filter", *pending, "error", err)
		}
	}
}

// forward 将子组件事件原样转发到外部总线
func (c *Coordinator) forward(r *run, evt types.Event) {
	if !c.current(r) {
		return
	}
	c.publish(evt)
}

func (c *Coordinator) publish(evt types.Event) {
	c.external.Publish(Source, evt)
}

// ============================================================================
//                              命令
// ============================================================================

// SearchPeers 启动不带过滤器的节点扫描
//
// 见 SearchPeersFiltered。就绪前返回的 ErrNotReady 只是提示请求未被执行，
// 调用方可以忽略，会话状态不受影响。
func (c *Coordinator) SearchPeers() error {
	return c.SearchPeersFiltered("")
}

// SearchPeersFiltered 启动按名称过滤的节点扫描
//
// 过滤器总是先校验，不合法时返回 ErrInvalidFilter 且不做任何 I/O。
//
// 就绪后请求总会被接受：群组确定时自动发起的初始扫描会被取消并由本次请求替换；
// 只有另一个用户发起的扫描仍在进行时才返回 ErrSearchInProgress。
//
// 就绪前的请求按配置排队，或返回 ErrNotReady。ErrNotReady 是提示性的，
// 请求被丢弃但会话不受影响，调用方可以忽略它。
func (c *Coordinator) SearchPeersFiltered(filter string) error {
	if err := peers.ValidateFilter(filter); err != nil {
		return err
	}

	c.mu.Lock()
	switch c.state {
	case types.SessionReady:
		r := c.run
		dir := r.peers
		replace := r.autoSweep
		r.autoSweep = false
		c.mu.Unlock()
		if replace {
			dir.StopSweep()
		}
		return dir.SweepFiltered(filter)
	case types.SessionConnecting:
		if c.cfg.QueueSearchUntilReady {
			f := filter
			c.run.pending = &f
			c.mu.Unlock()
			logger.Debug("节点查找已排队", "filter", filter)
			return nil
		}
	}
	c.mu.Unlock()
	return ErrNotReady
}

// StopSearch 取消进行中的节点扫描与排队的请求
func (c *Coordinator) StopSearch() {
	c.mu.Lock()
	r := c.run
	var dir *peers.Directory
	if r != nil {
		r.pending = nil
		r.autoSweep = false
		dir = r.peers
	}
	c.mu.Unlock()

	if dir != nil {
		dir.StopSweep()
	}
}

// Searching 是否有节点扫描在进行
func (c *Coordinator) Searching() bool {
	c.mu.Lock()
	var dir *peers.Directory
	if c.run != nil {
		dir = c.run.peers
	}
	c.mu.Unlock()
	return dir != nil && dir.Sweeping()
}

// SendMessage 向 receiverID 发送消息
//
// 未就绪或传输层拒绝时返回 false。
func (c *Coordinator) SendMessage(receiverID types.PeerID, payload string) bool {
	c.mu.Lock()
	if c.state != types.SessionReady {
		c.mu.Unlock()
		c.metrics.MessageSent(metrics.SendNotReady)
		return false
	}
	ch := c.run.channel
	c.mu.Unlock()
	return ch.Send(receiverID, payload)
}

// Peers 返回花名册快照；未就绪时为空
func (c *Coordinator) Peers() types.Roster {
	c.mu.Lock()
	if c.state != types.SessionReady {
		c.mu.Unlock()
		return make(types.Roster)
	}
	dir := c.run.peers
	c.mu.Unlock()
	return dir.Roster()
}

// Flush 清除缓存的群组与节点公告
func (c *Coordinator) Flush() error {
	c.mu.Lock()
	r := c.run
	var dir *peers.Directory
	if r != nil {
		dir = r.peers
	}
	c.mu.Unlock()
	if r == nil {
		return nil
	}

	err := r.resolver.Flush()
	if dir != nil {
		err = multierr.Append(err, dir.Flush())
	}
	return err
}

// ============================================================================
//                              查询
// ============================================================================

// State 返回会话状态
func (c *Coordinator) State() types.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Phase 返回 Connecting 状态下的阶段
func (c *Coordinator) Phase() types.SessionPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// IsStarted 是否已启动（Connecting 或 Ready）
func (c *Coordinator) IsStarted() bool {
	s := c.State()
	return s == types.SessionConnecting || s == types.SessionReady
}

// IsReady 是否已就绪
func (c *Coordinator) IsReady() bool {
	return c.State() == types.SessionReady
}

// LocalPeer 返回本节点
func (c *Coordinator) LocalPeer() types.PeerRecord {
	return c.dir.LocalPeer()
}

// Group 返回配置的群组描述
func (c *Coordinator) Group() types.GroupRecord {
	return c.cfg.Group
}

// ResolvedGroup 返回本次运行确定的群组
func (c *Coordinator) ResolvedGroup() (types.GroupRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.run == nil || c.run.group.IsEmpty() {
		return types.GroupRecord{}, false
	}
	return c.run.group, true
}

// Channel 返回消息通道描述
func (c *Coordinator) Channel() types.ChannelSpec {
	return c.cfg.Channel
}

// Bus 返回外部事件总线
func (c *Coordinator) Bus() *eventbus.Bus {
	return c.external
}
