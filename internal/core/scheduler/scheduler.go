package scheduler

import (
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-lobby/pkg/lib/log"
)

var logger = log.Logger("core/scheduler")

// Scheduler 有界重试调度器
//
// 可复用：一次运行结束（或被 Stop）后可以再次 Start。
type Scheduler struct {
	clock clock.Clock

	mu      sync.Mutex
	current *run
}

// run 单次运行的状态
//
// tick 在一次 tick 的判定与回调期间持有，Stop 借它等待进行中的 tick。
type run struct {
	tick     sync.Mutex
	stopCh   chan struct{}
	stopped  bool
	attempts int
}

// New 创建调度器
//
// clk 为 nil 时使用真实时钟。
func New(clk clock.Clock) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}
	return &Scheduler{clock: clk}
}

// Start 启动调度
//
// 首个定时器在返回前创建，便于模拟时钟测试。
func (s *Scheduler) Start(cfg Config, task Task) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && !s.current.stopped {
		return ErrRunning
	}

	r := &run{stopCh: make(chan struct{})}
	s.current = r
	timer := s.clock.Timer(cfg.FirstDelay)

	go s.loop(r, cfg, task, timer)
	return nil
}

// loop 调度循环
func (s *Scheduler) loop(r *run, cfg Config, task Task, timer *clock.Timer) {
	defer func() { timer.Stop() }()

	// 先排定下一次 tick 再探测，探测耗时不会推迟计时起点
	next := func() { timer = s.clock.Timer(cfg.Period) }

	for {
		select {
		case <-r.stopCh:
			return
		case <-timer.C:
		}
		if !s.tick(r, cfg, task, next) {
			return
		}
	}
}

// tick 执行一次 tick，返回 false 表示运行结束
func (s *Scheduler) tick(r *run, cfg Config, task Task, next func()) bool {
	r.tick.Lock()
	defer r.tick.Unlock()

	s.mu.Lock()
	if r.stopped {
		s.mu.Unlock()
		return false
	}
	r.attempts++
	attempt := r.attempts
	s.mu.Unlock()

	if attempt > cfg.MaxAttempts || (task.Done != nil && task.Done()) {
		if s.finish(r) {
			logger.Debug("调度结束", "attempts", attempt-1)
			if task.OnExhausted != nil {
				task.OnExhausted(attempt - 1)
			}
		}
		return false
	}

	next()
	if task.Probe != nil {
		task.Probe(attempt)
	}
	return true
}

// finish 标记运行结束，已被 Stop 时返回 false
func (s *Scheduler) finish(r *run) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.stopped {
		return false
	}
	r.stopped = true
	close(r.stopCh)
	return true
}

// Stop 取消后续 tick，并等待进行中的 tick（Probe 或 OnExhausted）结束
//
// 返回后不会再有任何回调。可重复调用。
// 不能在回调内部调用，回调内部请用 Cancel。
func (s *Scheduler) Stop() {
	if r := s.cancel(); r != nil {
		r.tick.Lock()
		r.tick.Unlock() //nolint:staticcheck // 仅用于等待进行中的 tick
	}
}

// Cancel 取消后续 tick，不等待进行中的 tick
//
// 可在 Probe 内部调用，当前 Probe 会执行完毕。
func (s *Scheduler) Cancel() {
	s.cancel()
}

// cancel 标记当前运行已停止，返回该运行（无运行时为 nil）
func (s *Scheduler) cancel() *run {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.current
	if r == nil {
		return nil
	}
	if !r.stopped {
		r.stopped = true
		close(r.stopCh)
	}
	return r
}

// Running 检查是否在运行
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && !s.current.stopped
}

// Attempts 返回当前（或最近一次）运行的计数器值
func (s *Scheduler) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.attempts
}
