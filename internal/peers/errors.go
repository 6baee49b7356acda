package peers

import "errors"

var (
	// ErrInvalidFilter 名称过滤器不合法（只允许字母、数字、下划线）
	ErrInvalidFilter = errors.New("peers: invalid name filter")

	// ErrSweepInProgress 已有扫描在进行
	ErrSweepInProgress = errors.New("peers: sweep already in progress")

	// ErrStopped 目录已停止
	ErrStopped = errors.New("peers: directory stopped")

	// ErrInvalidConfig 无效配置
	ErrInvalidConfig = errors.New("peers: invalid config")
)
