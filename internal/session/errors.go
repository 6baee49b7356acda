package session

import (
	"errors"

	"github.com/dep2p/go-lobby/internal/peers"
)

var (
	// ErrStartup 覆盖网络启动失败
	ErrStartup = errors.New("session: overlay startup failed")

	// ErrClosed 协调器已关闭
	ErrClosed = errors.New("session: closed")

	// ErrNotReady 会话未就绪，命令被丢弃
	ErrNotReady = errors.New("session: not ready")

	// ErrInvalidFilter 名称过滤器不合法
	ErrInvalidFilter = peers.ErrInvalidFilter

	// ErrSearchInProgress 已有节点扫描在进行
	ErrSearchInProgress = peers.ErrSweepInProgress
)
