package config

import (
	"fmt"
	"net"
)

// OverlayConfig 组播覆盖网络配置
type OverlayConfig struct {
	// MulticastAddr 组播地址
	// 默认值: "239.255.42.99:9789"
	MulticastAddr string `json:"multicast_addr"`

	// Interface 组播网卡名称，为空时使用系统默认
	Interface string `json:"interface,omitempty"`

	// TTL 组播 TTL，1 表示只在本网段
	TTL int `json:"ttl"`

	// QueryRate 远程查询速率（每秒）
	QueryRate float64 `json:"query_rate"`

	// QueryBurst 远程查询突发量
	QueryBurst int `json:"query_burst"`

	// DedupSize 报文去重缓存容量
	DedupSize int `json:"dedup_size"`
}

// DefaultOverlayConfig 返回默认的覆盖网络配置
func DefaultOverlayConfig() OverlayConfig {
	return OverlayConfig{
		MulticastAddr: "239.255.42.99:9789",
		TTL:           1,
		QueryRate:     10,
		QueryBurst:    20,
		DedupSize:     4096,
	}
}

// Validate 验证覆盖网络配置
func (c *OverlayConfig) Validate() error {
	addr, err := net.ResolveUDPAddr("udp4", c.MulticastAddr)
	if err != nil {
		return fmt.Errorf("overlay: multicast_addr %q: %w", c.MulticastAddr, err)
	}
	if !addr.IP.IsMulticast() {
		return fmt.Errorf("overlay: %s is not a multicast address", c.MulticastAddr)
	}
	if c.TTL <= 0 || c.TTL > 255 {
		return fmt.Errorf("overlay: ttl must be in [1,255]")
	}
	if c.QueryRate <= 0 || c.QueryBurst <= 0 {
		return fmt.Errorf("overlay: query_rate and query_burst must be positive")
	}
	if c.DedupSize <= 0 {
		return fmt.Errorf("overlay: dedup_size must be positive")
	}
	return nil
}

// DispatchConfig 事件分发工作池配置
type DispatchConfig struct {
	// Workers worker 数量
	// 默认值: 4
	Workers int `json:"workers"`

	// QueueSize 每个 worker 的队列长度，队列满时丢弃事件
	// 默认值: 256
	QueueSize int `json:"queue_size"`
}

// DefaultDispatchConfig 返回默认的分发配置
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		Workers:   4,
		QueueSize: 256,
	}
}

// Validate 验证分发配置
func (c *DispatchConfig) Validate() error {
	if c.Workers <= 0 || c.QueueSize <= 0 {
		return fmt.Errorf("dispatch: workers and queue_size must be positive")
	}
	return nil
}
