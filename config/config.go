// Package config 提供统一的配置管理
//
// 本包采用聚合配置模式：
//   - 主 Config 结构体聚合所有子配置
//   - 每个子配置在独立文件中定义，带默认值与校验
//   - 支持从 JSON 加载和保存配置
//   - 支持以 LOBBY_ 前缀的环境变量覆盖
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Identity.PeerName = "alice"
//
//	// 从文件加载并应用环境变量
//	cfg, err := config.LoadFile("lobby.json")
//	if err == nil {
//	    err = cfg.ApplyEnv()
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config 是大厅节点的完整配置结构
//
// 配置按照功能模块组织：
//   - Identity: 本节点显示名称
//   - Group / Channel: 要加入的群组与群组内的消息通道
//   - Search / Announce: 查找节奏与公告时长
//   - Session: 会话策略
//   - Overlay: 组播覆盖网络
//   - Dispatch: 事件分发工作池
//   - Storage: 公告缓存
//   - Metrics / Log: 可观测性
type Config struct {
	// Identity 身份配置
	Identity IdentityConfig `json:"identity"`

	// Group 群组配置
	Group GroupConfig `json:"group"`

	// Channel 消息通道配置
	Channel ChannelConfig `json:"channel"`

	// Search 查找配置
	Search SearchConfig `json:"search"`

	// Announce 节点公告配置
	Announce AnnounceConfig `json:"announce"`

	// Session 会话配置
	Session SessionConfig `json:"session"`

	// Overlay 覆盖网络配置
	Overlay OverlayConfig `json:"overlay"`

	// Dispatch 事件分发配置
	Dispatch DispatchConfig `json:"dispatch"`

	// Storage 存储配置
	Storage StorageConfig `json:"storage"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Identity: DefaultIdentityConfig(),
		Group:    DefaultGroupConfig(),
		Channel:  DefaultChannelConfig(),
		Search:   DefaultSearchConfig(),
		Announce: DefaultAnnounceConfig(),
		Session:  DefaultSessionConfig(),
		Overlay:  DefaultOverlayConfig(),
		Dispatch: DefaultDispatchConfig(),
		Storage:  DefaultStorageConfig(),
		Metrics:  DefaultMetricsConfig(),
		Log:      DefaultLogConfig(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{
		&c.Identity,
		&c.Group,
		&c.Channel,
		&c.Search,
		&c.Announce,
		&c.Overlay,
		&c.Dispatch,
		&c.Storage,
		&c.Metrics,
		&c.Log,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone 返回配置副本
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// ============================================================================
//                              JSON 加载与保存
// ============================================================================

// FromJSON 从 JSON 数据创建配置
//
// 未出现在 JSON 中的字段保持默认值。
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse json: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile 从 JSON 文件加载配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return FromJSON(data)
}

// ToJSON 将配置序列化为带缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// SaveFile 将配置写入 JSON 文件
func (c *Config) SaveFile(path string) error {
	data, err := c.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
