package dispatch

import "errors"

var (
	// ErrClosed 工作池已关闭
	ErrClosed = errors.New("dispatch: pool closed")

	// ErrQueueFull 队列已满，任务被丢弃
	ErrQueueFull = errors.New("dispatch: queue full")

	// ErrInvalidConfig 无效的配置
	ErrInvalidConfig = errors.New("dispatch: invalid config")
)
