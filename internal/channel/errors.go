package channel

import "errors"

var (
	// ErrAlreadyOpen 通道已打开
	ErrAlreadyOpen = errors.New("channel: already open")

	// ErrClosed 通道已关闭
	ErrClosed = errors.New("channel: closed")

	// ErrInvalidSpec 无效的通道描述
	ErrInvalidSpec = errors.New("channel: invalid channel spec")
)
