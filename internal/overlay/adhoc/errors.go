package adhoc

import "errors"

var (
	// ErrNotStarted 覆盖网络未启动
	ErrNotStarted = errors.New("adhoc: not started")

	// ErrRateLimited 远程查询被限流
	ErrRateLimited = errors.New("adhoc: remote query rate limited")

	// ErrMessageTooLarge 报文超过单个 UDP 包上限
	ErrMessageTooLarge = errors.New("adhoc: message too large")

	// ErrPipeClosed 端点已关闭
	ErrPipeClosed = errors.New("adhoc: pipe closed")

	// ErrInvalidConfig 无效的配置
	ErrInvalidConfig = errors.New("adhoc: invalid config")
)
