package dispatch

import (
	"sync"

	"github.com/spaolacci/murmur3"

	"github.com/dep2p/go-lobby/pkg/lib/log"
)

var logger = log.Logger("core/dispatch")

// Task 分发单元
type Task func()

// Pool 按键分片的工作池
type Pool struct {
	mu     sync.RWMutex
	closed bool
	queues []chan Task
	wg     sync.WaitGroup

	onDrop func(key string)
}

// New 创建并启动工作池
func New(cfg Config, opts ...Option) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pool{
		queues: make([]chan Task, cfg.Workers),
	}
	for _, opt := range opts {
		opt(p)
	}

	for i := range p.queues {
		q := make(chan Task, cfg.QueueSize)
		p.queues[i] = q
		p.wg.Add(1)
		go p.worker(q)
	}
	return p, nil
}

// worker 顺序执行队列中的任务
func (p *Pool) worker(q <-chan Task) {
	defer p.wg.Done()
	for task := range q {
		p.run(task)
	}
}

// run 执行单个任务并恢复 panic
func (p *Pool) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("分发任务 panic", "panic", r)
		}
	}()
	task()
}

// index 计算键对应的 worker
func (p *Pool) index(key string) int {
	return int(murmur3.Sum32([]byte(key)) % uint32(len(p.queues)))
}

// Submit 提交任务（不阻塞）
//
// 队列满时丢弃任务并返回 ErrQueueFull，关闭后返回 ErrClosed。
func (p *Pool) Submit(key string, task Task) error {
	if task == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	select {
	case p.queues[p.index(key)] <- task:
		return nil
	default:
		logger.Warn("分发队列已满，丢弃任务", "key", key)
		if p.onDrop != nil {
			p.onDrop(key)
		}
		return ErrQueueFull
	}
}

// SubmitWait 提交任务，队列满时等待空位而不丢弃
//
// 用于驱动状态机的控制事件。关闭后返回 ErrClosed。
// 不能在同一键对应的 worker 中调用，否则队列满时会自锁。
func (p *Pool) SubmitWait(key string, task Task) error {
	if task == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	q := p.queues[p.index(key)]
	select {
	case q <- task:
		return nil
	default:
	}

	logger.Debug("分发队列已满，等待空位", "key", key)
	q <- task
	return nil
}

// Workers 返回 worker 数量
func (p *Pool) Workers() int {
	return len(p.queues)
}

// Close 关闭工作池
//
// 已入队的任务会执行完毕，Close 等待所有 worker 退出。可重复调用。
// 阻塞中的 SubmitWait 先完成入队，Close 随后才生效。
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for _, q := range p.queues {
		close(q)
	}
	p.mu.Unlock()

	p.wg.Wait()
}
