package dispatch

import "fmt"

// Config 工作池配置
type Config struct {
	// Workers worker 数量
	Workers int

	// QueueSize 每个 worker 的队列长度
	QueueSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Workers:   4,
		QueueSize: 256,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue size must be positive", ErrInvalidConfig)
	}
	return nil
}

// Option 工作池选项
type Option func(*Pool)

// WithDropHook 设置任务被丢弃时的回调（用于计数）
func WithDropHook(fn func(key string)) Option {
	return func(p *Pool) {
		p.onDrop = fn
	}
}
