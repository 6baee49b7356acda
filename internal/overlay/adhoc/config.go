package adhoc

import (
	"fmt"
	"net"
)

// MaxPacketSize 单个报文的上限
const MaxPacketSize = 60000

// metaPeerID 元数据中保存节点 ID 的键
const metaPeerID = "peer_id"

// Config adhoc 覆盖网络配置
type Config struct {
	// PeerName 本节点显示名称
	PeerName string

	// Group 组播地址
	Group string

	// Interface 组播网卡（空表示系统默认）
	Interface string

	// TTL 组播 TTL
	TTL int

	// QueryRate 远程查询速率（每秒）
	QueryRate float64

	// QueryBurst 远程查询突发量
	QueryBurst int

	// DedupSize 报文去重 LRU 容量
	DedupSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		PeerName:   "peer",
		Group:      "239.255.42.99:9789",
		TTL:        1,
		QueryRate:  10,
		QueryBurst: 20,
		DedupSize:  4096,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	addr, err := net.ResolveUDPAddr("udp4", c.Group)
	if err != nil {
		return fmt.Errorf("%w: group %q: %v", ErrInvalidConfig, c.Group, err)
	}
	if !addr.IP.IsMulticast() {
		return fmt.Errorf("%w: %s is not a multicast address", ErrInvalidConfig, c.Group)
	}
	if c.TTL <= 0 || c.TTL > 255 {
		return fmt.Errorf("%w: ttl must be in [1,255]", ErrInvalidConfig)
	}
	if c.QueryRate <= 0 || c.QueryBurst <= 0 {
		return fmt.Errorf("%w: query rate and burst must be positive", ErrInvalidConfig)
	}
	if c.DedupSize <= 0 {
		return fmt.Errorf("%w: dedup size must be positive", ErrInvalidConfig)
	}
	return nil
}
