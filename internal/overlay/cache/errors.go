package cache

import "errors"

var (
	// ErrClosed 缓存已关闭
	ErrClosed = errors.New("cache: closed")

	// ErrInvalidAdvertisement 无效的公告
	ErrInvalidAdvertisement = errors.New("cache: invalid advertisement")
)
