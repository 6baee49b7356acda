package group

import (
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-lobby/internal/core/dispatch"
	"github.com/dep2p/go-lobby/internal/core/eventbus"
	"github.com/dep2p/go-lobby/internal/core/metrics"
	"github.com/dep2p/go-lobby/internal/core/scheduler"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/lib/log"
	"github.com/dep2p/go-lobby/pkg/types"
)

var logger = log.Logger("group")

// Option 解析器选项
type Option func(*Resolver)

// WithMetrics 设置指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithClock 设置调度时钟
func WithClock(clk clock.Clock) Option {
	return func(r *Resolver) {
		r.sched = scheduler.New(clk)
	}
}

// Resolver 群组解析器
type Resolver struct {
	cfg     Config
	dir     interfaces.Directory
	emitter *eventbus.Emitter
	metrics *metrics.Metrics
	sched   *scheduler.Scheduler

	mu       sync.Mutex
	state    State
	target   types.GroupRecord
	known    map[types.GroupID]types.GroupRecord
	order    []types.GroupID
	resolved types.GroupRecord
}

var _ interfaces.DiscoveryListener = (*Resolver)(nil)

// New 创建解析器
//
// 事件发布到 bus 的 "group" 来源，pool 非 nil 时经工作池异步发布。
func New(cfg Config, dir interfaces.Directory, bus *eventbus.Bus, pool *dispatch.Pool, opts ...Option) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Resolver{
		cfg:     cfg,
		dir:     dir,
		emitter: bus.Emitter(Source, pool),
		known:   make(map[types.GroupID]types.GroupRecord),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sched == nil {
		r.sched = scheduler.New(nil)
	}
	return r, nil
}

// ============================================================================
//                              解析流程
// ============================================================================

// Resolve 开始查找 target 群组
//
// target 同时作为找不到时创建群组所用的固定描述。
func (r *Resolver) Resolve(target types.GroupRecord) error {
	if err := validGroup(target); err != nil {
		return err
	}

	r.mu.Lock()
	switch r.state {
	case StateIdle:
	case StateTerminal:
		r.mu.Unlock()
		return ErrStopped
	default:
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	r.state = StateSearching
	r.target = target
	r.mu.Unlock()

	r.dir.AddDiscoveryListener(r)

	err := r.sched.Start(r.cfg.Search, scheduler.Task{
		Probe:       r.probe,
		Done:        r.settled,
		OnExhausted: r.exhausted,
	})
	if err != nil {
		r.dir.RemoveDiscoveryListener(r)
		r.mu.Lock()
		r.state = StateIdle
		r.mu.Unlock()
		return err
	}

	logger.Info("开始查找群组", "name", target.Name)
	return nil
}

// probe 一次探测：本地查询，必要时远程查询
func (r *Resolver) probe(attempt int) {
	r.metrics.SearchAttempt("group")

	r.mu.Lock()
	name := r.target.Name
	r.mu.Unlock()

	advs, err := r.dir.QueryLocal(types.AdvKindGroup, types.AttrName, name)
	if err != nil {
		logger.Warn("本地查找群组失败", "attempt", attempt, "error", err)
	} else {
		r.addGroups(advs)
	}

	r.mu.Lock()
	needRemote := r.state == StateSearching && len(r.known) < r.cfg.MaxGroups
	r.mu.Unlock()
	if !needRemote {
		return
	}

	if err := r.dir.QueryRemote(types.AdvKindGroup, types.AttrName, name, r.cfg.MaxGroups); err != nil {
		logger.Warn("远程查找群组失败", "attempt", attempt, "error", err)
	}
}

// DiscoveryEvent 实现 interfaces.DiscoveryListener
func (r *Resolver) DiscoveryEvent(resp interfaces.DiscoveryResponse) {
	if resp.Kind != types.AdvKindGroup {
		return
	}
	r.addGroups(resp.Advertisements)
}

// addGroups 合并发现的群组
//
// 已知集合增长时发布 EvtGroupFound；仍在查找时首个群组胜出。
func (r *Resolver) addGroups(advs []types.Advertisement) {
	r.mu.Lock()
	if r.state == StateIdle || r.state == StateTerminal {
		r.mu.Unlock()
		return
	}

	before := len(r.known)
	for _, adv := range advs {
		if adv.Kind != types.AdvKindGroup || adv.ID == "" {
			continue
		}
		g := adv.GroupRecord()
		if _, ok := r.known[g.ID]; ok {
			continue
		}
		r.known[g.ID] = g
		r.order = append(r.order, g.ID)
		logger.Debug("发现群组", "id", g.ID, "name", g.Name)
	}
	if len(r.known) == before {
		r.mu.Unlock()
		return
	}

	snapshot := r.snapshotLocked()
	found := r.state == StateSearching
	if found {
		r.state = StateFound
		r.resolved = r.known[r.order[0]]
	}
	resolved := r.resolved
	r.mu.Unlock()

	_ = r.emitter.Emit(types.NewEvtGroupFound(snapshot))

	if found {
		// 可能处于本解析器的 Probe 调用链中，只取消不等待
		r.sched.Cancel()
		r.dir.RemoveDiscoveryListener(r)
		r.metrics.GroupResolved(false)
		logger.Info("群组已找到", "id", resolved.ID, "name", resolved.Name)
		_ = r.emitter.EmitControl(types.NewEvtResolvedGroup(resolved, false))
	}
}

// settled 调度完成判定：不再处于查找状态
func (r *Resolver) settled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state != StateSearching
}

// exhausted 尝试用尽：仍未找到时创建群组
func (r *Resolver) exhausted(attempts int) {
	r.mu.Lock()
	if r.state != StateSearching {
		r.mu.Unlock()
		return
	}
	r.state = StateCreated
	g := r.target
	r.resolved = g
	if _, ok := r.known[g.ID]; !ok {
		r.known[g.ID] = g
		r.order = append(r.order, g.ID)
	}
	r.mu.Unlock()

	r.dir.RemoveDiscoveryListener(r)

	adv := types.GroupAdvertisement(g, r.dir.LocalPeer().ID)
	if err := r.dir.PublishLocal(adv, r.cfg.Lifetime, r.cfg.Expiration); err != nil {
		logger.Warn("本地发布群组失败", "id", g.ID, "error", err)
	}
	if err := r.dir.PublishRemote(adv, r.cfg.Expiration); err != nil {
		logger.Warn("远程发布群组失败", "id", g.ID, "error", err)
	}

	r.metrics.GroupResolved(true)
	logger.Info("未找到群组，已创建", "id", g.ID, "name", g.Name, "attempts", attempts)
	_ = r.emitter.EmitControl(types.NewEvtResolvedGroup(g, true))
}

// ============================================================================
//                              查询与控制
// ============================================================================

// snapshotLocked 按发现顺序返回已知群组
func (r *Resolver) snapshotLocked() []types.GroupRecord {
	out := make([]types.GroupRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.known[id])
	}
	return out
}

// Groups 返回已知群组快照（按发现顺序）
func (r *Resolver) Groups() []types.GroupRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Resolved 返回解析结果
func (r *Resolver) Resolved() (types.GroupRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved, !r.resolved.IsEmpty()
}

// State 返回当前状态
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Flush 清除缓存的群组公告与已知群组（不影响解析结果）
func (r *Resolver) Flush() error {
	r.mu.Lock()
	r.known = make(map[types.GroupID]types.GroupRecord)
	r.order = nil
	r.mu.Unlock()
	return r.dir.FlushLocal(types.AdvKindGroup)
}

// Stop 停止解析器，进入 Terminal
//
// 可重复调用。
func (r *Resolver) Stop() {
	r.mu.Lock()
	if r.state == StateTerminal {
		r.mu.Unlock()
		return
	}
	r.state = StateTerminal
	r.mu.Unlock()

	r.sched.Stop()
	r.dir.RemoveDiscoveryListener(r)
}
