package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// 存储后端
const (
	StorageMemory = "memory"
	StorageBadger = "badger"
)

// StorageConfig 存储配置
//
// 公告缓存与节点身份保存在同一个存储中。badger 后端的 Dir 为空时
// 使用内存模式，重启后身份会重新签发。
//
// 数据目录结构：
//
//	${Dir}/
//	└── cache.db/           # BadgerDB 公告缓存
type StorageConfig struct {
	// Backend 存储后端: memory | badger
	// 默认值: "badger"
	Backend string `json:"backend"`

	// Dir 数据目录
	Dir string `json:"dir,omitempty"`

	// GCInterval badger 值日志 GC 周期
	// 默认值: 10m
	GCInterval Duration `json:"gc_interval"`
}

// DefaultStorageConfig 返回默认的存储配置
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:    StorageBadger,
		GCInterval: Duration(10 * time.Minute),
	}
}

// Validate 验证存储配置
func (c *StorageConfig) Validate() error {
	switch c.Backend {
	case StorageMemory, StorageBadger:
	default:
		return fmt.Errorf("storage: unknown backend %q", c.Backend)
	}
	if c.GCInterval <= 0 {
		return fmt.Errorf("storage: gc_interval must be positive")
	}
	return nil
}

// DBPath 返回 BadgerDB 数据库路径，Dir 为空时返回空串
func (c *StorageConfig) DBPath() string {
	if c.Dir == "" {
		return ""
	}
	return filepath.Join(c.Dir, "cache.db")
}
