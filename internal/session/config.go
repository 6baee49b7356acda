package session

import (
	"fmt"

	"github.com/dep2p/go-lobby/internal/group"
	"github.com/dep2p/go-lobby/internal/peers"
	"github.com/dep2p/go-lobby/pkg/types"
)

// Source 协调器在外部总线上的来源名
const Source = "session"

// Config 协调器配置
type Config struct {
	// Group 要加入的群组；找不到时以此描述创建
	Group types.GroupRecord

	// Channel 群组内的消息通道
	Channel types.ChannelSpec

	// Resolver 群组解析参数
	Resolver group.Config

	// Peers 节点目录参数
	Peers peers.Config

	// QueueSearchUntilReady 为 true 时，就绪前的节点查找请求会排队到就绪后执行；
	// 否则返回 ErrNotReady
	QueueSearchUntilReady bool
}

// DefaultConfig 返回默认配置
//
// 群组与通道描述没有默认值，由调用方提供。
func DefaultConfig() Config {
	return Config{
		Resolver: group.DefaultConfig(),
		Peers:    peers.DefaultConfig(),
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Group.ID.IsEmpty() || c.Group.Name == "" {
		return fmt.Errorf("session: group id and name required")
	}
	if c.Channel.ID.IsEmpty() {
		return fmt.Errorf("session: channel id required")
	}
	if err := c.Resolver.Validate(); err != nil {
		return err
	}
	return c.Peers.Validate()
}
