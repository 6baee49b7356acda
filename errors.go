package lobby

import (
	"errors"

	"github.com/dep2p/go-lobby/internal/session"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 会话生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrStartup 覆盖网络启动失败，会话保持 Idle
	ErrStartup = session.ErrStartup

	// ErrClosed 会话已关闭
	ErrClosed = session.ErrClosed

	// ErrNotReady 会话未就绪，命令被丢弃
	ErrNotReady = session.ErrNotReady

	// ────────────────────────────────────────────────────────────────────────
	// 查找错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrInvalidFilter 名称过滤器只允许字母、数字和下划线
	ErrInvalidFilter = session.ErrInvalidFilter

	// ErrSearchInProgress 已有节点扫描在进行
	ErrSearchInProgress = session.ErrSearchInProgress

	// ────────────────────────────────────────────────────────────────────────
	// 构造错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrIncompleteDirectory 自定义目录与通道服务必须同时提供
	ErrIncompleteDirectory = errors.New("lobby: directory and channel service must both be set")
)
