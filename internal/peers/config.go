package peers

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dep2p/go-lobby/internal/core/scheduler"
)

// Source 目录在事件总线上的来源名
const Source = "peers"

// 默认参数
const (
	DefaultMaxPeers   = 10
	DefaultLifetime   = 120000 * time.Millisecond
	DefaultExpiration = 120000 * time.Millisecond
)

// filterPattern 名称过滤器的合法形式
var filterPattern = regexp.MustCompile(`^\w*$`)

// Config 节点目录配置
type Config struct {
	// Sweep 扫描调度参数
	Sweep scheduler.Config

	// MaxPeers 花名册达到该规模后不再远程查询
	MaxPeers int

	// Lifetime 本地公告保留时长
	Lifetime time.Duration

	// Expiration 远端公告保留时长
	Expiration time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Sweep:      scheduler.DefaultConfig(),
		MaxPeers:   DefaultMaxPeers,
		Lifetime:   DefaultLifetime,
		Expiration: DefaultExpiration,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if err := c.Sweep.Validate(); err != nil {
		return err
	}
	if c.MaxPeers <= 0 {
		return fmt.Errorf("%w: max peers must be positive", ErrInvalidConfig)
	}
	if c.Lifetime <= 0 || c.Expiration <= 0 {
		return fmt.Errorf("%w: announce lifetimes must be positive", ErrInvalidConfig)
	}
	return nil
}

// ValidateFilter 检查名称过滤器
func ValidateFilter(filter string) error {
	if !filterPattern.MatchString(filter) {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, filter)
	}
	return nil
}

// queryValue 将过滤器转为查询值：空过滤器匹配全部，其余按子串匹配
func queryValue(filter string) string {
	if filter == "" {
		return "*"
	}
	return "*" + filter + "*"
}
