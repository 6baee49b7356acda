package scheduler

import (
	"fmt"
	"time"
)

// 默认参数
const (
	DefaultPeriod      = 1000 * time.Millisecond
	DefaultFirstDelay  = 200 * time.Millisecond
	DefaultMaxAttempts = 5
)

// Config 调度参数
type Config struct {
	// Period 两次 tick 的间隔
	Period time.Duration

	// FirstDelay 首次 tick 的延迟
	FirstDelay time.Duration

	// MaxAttempts 最大探测次数
	MaxAttempts int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Period:      DefaultPeriod,
		FirstDelay:  DefaultFirstDelay,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Period <= 0 {
		return fmt.Errorf("%w: period must be positive", ErrInvalidConfig)
	}
	if c.FirstDelay < 0 {
		return fmt.Errorf("%w: first delay must not be negative", ErrInvalidConfig)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max attempts must be positive", ErrInvalidConfig)
	}
	return nil
}

// Task 调度任务
type Task struct {
	// Probe 第 attempt 次探测（从 1 开始）
	Probe func(attempt int)

	// Done 报告任务是否已经完成，可为 nil
	Done func() bool

	// OnExhausted 调度终止时调用，attempts 为已执行的探测次数
	//
	// 由 Stop 取消时不调用。
	OnExhausted func(attempts int)
}
