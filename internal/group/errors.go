package group

import "errors"

var (
	// ErrAlreadyStarted 解析已开始
	ErrAlreadyStarted = errors.New("group: resolve already started")

	// ErrStopped 解析器已停止
	ErrStopped = errors.New("group: resolver stopped")

	// ErrInvalidGroup 无效的群组描述
	ErrInvalidGroup = errors.New("group: invalid group record")
)
