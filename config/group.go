package config

import (
	"fmt"
	"time"
)

// 默认群组与通道
const (
	DefaultGroupID          = "urn:jxta:uuid-F256F83F63904289A362BDFCF7F226B602"
	DefaultGroupName        = "CheckersGroup"
	DefaultGroupDescription = "Group for checkers game."

	DefaultChannelID   = "urn:jxta:uuid-59616261646162614E504720503250338BDD512C72FE462EAE54E9948FF4C23E04"
	DefaultChannelName = "CheckerPipe"
)

// GroupConfig 群组配置
//
// 查找不到同名群组时，以这里的 ID、名称和描述创建群组。
// 所有节点使用同一固定 ID，同时创建的群组在缓存中按 ID 合并。
type GroupConfig struct {
	// ID 群组 ID
	ID string `json:"id"`

	// Name 群组名称，查找按名称进行
	Name string `json:"name"`

	// Description 群组描述
	Description string `json:"description"`

	// Lifetime 创建群组时本地公告的保留时长
	// 默认值: 365 天
	Lifetime Duration `json:"lifetime"`

	// Expiration 创建群组时远端公告的保留时长
	// 默认值: 2h
	Expiration Duration `json:"expiration"`
}

// DefaultGroupConfig 返回默认的群组配置
func DefaultGroupConfig() GroupConfig {
	return GroupConfig{
		ID:          DefaultGroupID,
		Name:        DefaultGroupName,
		Description: DefaultGroupDescription,
		Lifetime:    Duration(365 * 24 * time.Hour),
		Expiration:  Duration(2 * time.Hour),
	}
}

// Validate 验证群组配置
func (c *GroupConfig) Validate() error {
	if c.ID == "" || c.Name == "" {
		return fmt.Errorf("group: id and name cannot be empty")
	}
	if c.Lifetime <= 0 || c.Expiration <= 0 {
		return fmt.Errorf("group: lifetime and expiration must be positive")
	}
	return nil
}

// ChannelConfig 消息通道配置
type ChannelConfig struct {
	// ID 通道 ID
	ID string `json:"id"`

	// Name 通道名称
	Name string `json:"name"`
}

// DefaultChannelConfig 返回默认的通道配置
func DefaultChannelConfig() ChannelConfig {
	return ChannelConfig{
		ID:   DefaultChannelID,
		Name: DefaultChannelName,
	}
}

// Validate 验证通道配置
func (c *ChannelConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("channel: id cannot be empty")
	}
	return nil
}
