package peers

import (
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	"github.com/dep2p/go-lobby/internal/core/dispatch"
	"github.com/dep2p/go-lobby/internal/core/eventbus"
	"github.com/dep2p/go-lobby/internal/core/metrics"
	"github.com/dep2p/go-lobby/internal/core/scheduler"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/lib/log"
	"github.com/dep2p/go-lobby/pkg/types"
)

var logger = log.Logger("peers")

// Option 目录选项
type Option func(*Directory)

// WithMetrics 设置指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Directory) {
		d.metrics = m
	}
}

// WithClock 设置扫描时钟
func WithClock(clk clock.Clock) Option {
	return func(d *Directory) {
		d.sweep = scheduler.New(clk)
	}
}

// Directory 群组内节点目录
type Directory struct {
	cfg     Config
	dir     interfaces.Directory
	group   types.GroupRecord
	channel types.ChannelSpec
	local   types.PeerRecord
	emitter *eventbus.Emitter
	metrics *metrics.Metrics
	sweep   *scheduler.Scheduler

	mu      sync.Mutex
	roster  types.Roster
	started bool
	stopped bool
}

var _ interfaces.DiscoveryListener = (*Directory)(nil)

// New 创建节点目录
//
// group 为已确定的群组，channel 为随节点公告一起发布的通道。
func New(cfg Config, dir interfaces.Directory, group types.GroupRecord, channel types.ChannelSpec,
	bus *eventbus.Bus, pool *dispatch.Pool, opts ...Option) (*Directory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Directory{
		cfg:     cfg,
		dir:     dir,
		group:   group,
		channel: channel,
		local:   dir.LocalPeer(),
		emitter: bus.Emitter(Source, pool),
		roster:  make(types.Roster),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.sweep == nil {
		d.sweep = scheduler.New(nil)
	}
	return d, nil
}

// ============================================================================
//                              生命周期
// ============================================================================

// Start 注册发现回调并宣告本节点
//
// 宣告失败只返回错误，目录仍然可用。
func (d *Directory) Start() error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return ErrStopped
	}
	if d.started {
		d.mu.Unlock()
		return nil
	}
	d.started = true
	d.mu.Unlock()

	d.dir.AddDiscoveryListener(d)
	return d.Announce()
}

// Stop 停止扫描，注销回调并清空花名册
func (d *Directory) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.roster = make(types.Roster)
	d.mu.Unlock()

	d.sweep.Stop()
	d.dir.RemoveDiscoveryListener(d)
}

// ============================================================================
//                              宣告与查找
// ============================================================================

// Announce 以默认时长发布通道公告与节点公告
func (d *Directory) Announce() error {
	return d.AnnounceFor(d.cfg.Lifetime, d.cfg.Expiration)
}

// AnnounceFor 以指定时长发布通道公告与节点公告（本地与远端）
func (d *Directory) AnnounceFor(lifetime, expiration time.Duration) error {
	pipe := types.PipeAdvertisement(d.channel, d.group.ID, d.local.ID)
	peer := types.PeerAdvertisement(d.local, d.group.ID)

	var err error
	for _, adv := range []types.Advertisement{pipe, peer} {
		err = multierr.Append(err, d.dir.PublishLocal(adv, lifetime, expiration))
		err = multierr.Append(err, d.dir.PublishRemote(adv, expiration))
	}
	if err != nil {
		logger.Warn("宣告本节点失败", "peer", log.TruncateID(string(d.local.ID), 8), "error", err)
	}
	return err
}

// Search 执行一次查找
//
// filter 只允许字母、数字和下划线，不合法时返回 ErrInvalidFilter 且不做任何 I/O。
// 空 filter 查找全部节点。
func (d *Directory) Search(filter string, maxPeers int) error {
	if err := ValidateFilter(filter); err != nil {
		return err
	}
	if d.isStopped() {
		return ErrStopped
	}
	if maxPeers <= 0 {
		maxPeers = d.cfg.MaxPeers
	}

	d.search(filter, maxPeers)
	return nil
}

func (d *Directory) search(filter string, maxPeers int) {
	d.metrics.SearchAttempt("peers")
	_ = d.Announce()

	value := queryValue(filter)
	advs, err := d.dir.QueryLocal(types.AdvKindPeer, types.AttrName, value)
	if err != nil {
		logger.Warn("本地查找节点失败", "filter", filter, "error", err)
	} else {
		d.addPeers(advs)
	}

	d.mu.Lock()
	size := len(d.roster)
	d.mu.Unlock()
	if size >= maxPeers {
		return
	}

	if err := d.dir.QueryRemote(types.AdvKindPeer, types.AttrName, value, maxPeers); err != nil {
		logger.Warn("远程查找节点失败", "filter", filter, "error", err)
	}
}

// DiscoveryEvent 实现 interfaces.DiscoveryListener
func (d *Directory) DiscoveryEvent(resp interfaces.DiscoveryResponse) {
	if resp.Kind != types.AdvKindPeer {
		return
	}
	d.addPeers(resp.Advertisements)
}

// addPeers 合并节点公告
//
// 只接受本群组内的其他节点；花名册规模变化时发布 EvtPeerFound。
func (d *Directory) addPeers(advs []types.Advertisement) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}

	before := len(d.roster)
	for _, adv := range advs {
		if adv.Kind != types.AdvKindPeer || adv.ID == "" {
			continue
		}
		if adv.GroupID != d.group.ID {
			continue
		}
		p := adv.PeerRecord()
		if p.ID == d.local.ID {
			continue
		}
		d.roster[p.ID] = p.DisplayName
	}
	size := len(d.roster)
	if size == before {
		d.mu.Unlock()
		return
	}
	snapshot := d.roster.Clone()
	d.mu.Unlock()

	d.metrics.RosterSize(size)
	logger.Debug("花名册更新", "size", size)
	_ = d.emitter.Emit(types.NewEvtPeerFound(snapshot))
}

// ============================================================================
//                              扫描
// ============================================================================

// Sweep 启动不带过滤器的扫描
func (d *Directory) Sweep() error {
	return d.SweepFiltered("")
}

// SweepFiltered 启动带过滤器的扫描
//
// 每次 tick 执行一次 Search，尝试次数用尽后发布 EvtPeerSearchFinished。
// 同一时间只允许一个扫描。
func (d *Directory) SweepFiltered(filter string) error {
	if err := ValidateFilter(filter); err != nil {
		return err
	}
	if d.isStopped() {
		return ErrStopped
	}

	maxPeers := d.cfg.MaxPeers
	err := d.sweep.Start(d.cfg.Sweep, scheduler.Task{
		Probe: func(int) {
			d.search(filter, maxPeers)
		},
		OnExhausted: d.sweepFinished,
	})
	if errors.Is(err, scheduler.ErrRunning) {
		return ErrSweepInProgress
	}
	if err != nil {
		return err
	}

	logger.Debug("开始扫描节点", "filter", filter)
	return nil
}

func (d *Directory) sweepFinished(attempts int) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	snapshot := d.roster.Clone()
	d.mu.Unlock()

	logger.Debug("节点扫描结束", "attempts", attempts, "size", len(snapshot))
	_ = d.emitter.Emit(types.NewEvtPeerSearchFinished(snapshot, attempts))
}

// StopSweep 取消进行中的扫描，不发布结束事件
func (d *Directory) StopSweep() {
	d.sweep.Stop()
}

// Sweeping 是否有扫描在进行
func (d *Directory) Sweeping() bool {
	return d.sweep.Running()
}

// ============================================================================
//                              查询
// ============================================================================

// Flush 清除缓存的节点公告并清空花名册
func (d *Directory) Flush() error {
	d.mu.Lock()
	d.roster = make(types.Roster)
	d.mu.Unlock()

	d.metrics.RosterSize(0)
	return d.dir.FlushLocal(types.AdvKindPeer)
}

// Roster 返回花名册副本
func (d *Directory) Roster() types.Roster {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.roster.Clone()
}

// Group 返回所属群组
func (d *Directory) Group() types.GroupRecord {
	return d.group
}

func (d *Directory) isStopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}
