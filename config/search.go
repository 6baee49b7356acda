package config

import (
	"fmt"
	"time"
)

// SearchConfig 查找配置
//
// 群组查找与节点扫描共用同一节奏：首次延迟后按固定周期探测，
// 超过最大次数即结束。
type SearchConfig struct {
	// Period 探测周期
	// 默认值: 1s
	Period Duration `json:"period"`

	// FirstDelay 首次探测延迟
	// 默认值: 200ms
	FirstDelay Duration `json:"first_delay"`

	// MaxAttempts 最大探测次数
	// 默认值: 5
	MaxAttempts int `json:"max_attempts"`

	// MaxPeers 花名册达到该规模后不再远程查询
	// 默认值: 10
	MaxPeers int `json:"max_peers"`

	// MaxGroups 已知群组达到该数量后不再远程查询
	// 默认值: 1
	MaxGroups int `json:"max_groups"`
}

// DefaultSearchConfig 返回默认的查找配置
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Period:      Duration(time.Second),
		FirstDelay:  Duration(200 * time.Millisecond),
		MaxAttempts: 5,
		MaxPeers:    10,
		MaxGroups:   1,
	}
}

// Validate 验证查找配置
func (c *SearchConfig) Validate() error {
	if c.Period <= 0 {
		return fmt.Errorf("search: period must be positive")
	}
	if c.FirstDelay < 0 {
		return fmt.Errorf("search: first_delay cannot be negative")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("search: max_attempts must be positive")
	}
	if c.MaxPeers <= 0 || c.MaxGroups <= 0 {
		return fmt.Errorf("search: max_peers and max_groups must be positive")
	}
	return nil
}

// AnnounceConfig 节点公告配置
type AnnounceConfig struct {
	// Lifetime 本地公告保留时长
	// 默认值: 2m
	Lifetime Duration `json:"lifetime"`

	// Expiration 远端公告保留时长
	// 默认值: 2m
	Expiration Duration `json:"expiration"`
}

// DefaultAnnounceConfig 返回默认的公告配置
func DefaultAnnounceConfig() AnnounceConfig {
	return AnnounceConfig{
		Lifetime:   Duration(120000 * time.Millisecond),
		Expiration: Duration(120000 * time.Millisecond),
	}
}

// Validate 验证公告配置
func (c *AnnounceConfig) Validate() error {
	if c.Lifetime <= 0 || c.Expiration <= 0 {
		return fmt.Errorf("announce: lifetime and expiration must be positive")
	}
	return nil
}

// SessionConfig 会话配置
type SessionConfig struct {
	// QueueSearchUntilReady 就绪前的节点查找请求是否排队到就绪后执行
	// 默认值: false（直接丢弃）
	QueueSearchUntilReady bool `json:"queue_search_until_ready"`
}

// DefaultSessionConfig 返回默认的会话配置
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{}
}
