package cache

import (
	"fmt"
	"time"
)

// 缓存后端
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Config 缓存配置
type Config struct {
	// Backend memory | badger
	Backend string

	// Dir badger 数据目录，为空时 badger 使用内存模式
	Dir string

	// GCInterval badger 值日志 GC 周期
	GCInterval time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Backend:    BackendMemory,
		GCInterval: 10 * time.Minute,
	}
}

// Open 按配置打开缓存
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(nil), nil
	case BackendBadger:
		return OpenBadger(BadgerConfig{
			Dir:        cfg.Dir,
			InMemory:   cfg.Dir == "",
			GCInterval: cfg.GCInterval,
		})
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", cfg.Backend)
	}
}
