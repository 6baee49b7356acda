package scheduler

import "errors"

var (
	// ErrRunning 调度器已在运行
	ErrRunning = errors.New("scheduler: already running")

	// ErrInvalidConfig 无效的配置
	ErrInvalidConfig = errors.New("scheduler: invalid config")
)
