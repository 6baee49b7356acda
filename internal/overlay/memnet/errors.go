package memnet

import "errors"

var (
	// ErrNotStarted 节点未启动
	ErrNotStarted = errors.New("memnet: node not started")

	// ErrPipeClosed 端点已关闭
	ErrPipeClosed = errors.New("memnet: pipe closed")
)
