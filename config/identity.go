package config

import (
	"fmt"
	"os"
)

// IdentityConfig 身份配置
//
// 节点 ID 由覆盖网络签发并持久化在缓存中，这里只配置显示名称。
type IdentityConfig struct {
	// PeerName 本节点显示名称
	// 默认值: 主机名，取不到时为 "peer"
	PeerName string `json:"peer_name"`
}

// DefaultIdentityConfig 返回默认的身份配置
func DefaultIdentityConfig() IdentityConfig {
	name, err := os.Hostname()
	if err != nil || name == "" {
		name = "peer"
	}
	return IdentityConfig{PeerName: name}
}

// Validate 验证身份配置
func (c *IdentityConfig) Validate() error {
	if c.PeerName == "" {
		return fmt.Errorf("identity: peer_name cannot be empty")
	}
	return nil
}
