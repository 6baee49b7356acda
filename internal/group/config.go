package group

import (
	"fmt"
	"time"

	"github.com/dep2p/go-lobby/internal/core/scheduler"
	"github.com/dep2p/go-lobby/pkg/types"
)

// Source 解析器在事件总线上的来源名
const Source = "group"

// Config 解析器配置
type Config struct {
	// Search 探测调度参数
	Search scheduler.Config

	// MaxGroups 已知群组数达到该值后不再远程查询
	MaxGroups int

	// Lifetime 创建群组时本地公告的保留时长
	Lifetime time.Duration

	// Expiration 创建群组时远端公告的保留时长
	Expiration time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Search:     scheduler.DefaultConfig(),
		MaxGroups:  1,
		Lifetime:   365 * 24 * time.Hour,
		Expiration: 2 * time.Hour,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if c.MaxGroups <= 0 {
		return fmt.Errorf("group: max groups must be positive")
	}
	if c.Lifetime <= 0 || c.Expiration <= 0 {
		return fmt.Errorf("group: advertisement lifetimes must be positive")
	}
	return nil
}

// State 解析器状态
type State int

const (
	StateIdle State = iota
	StateSearching
	StateFound
	StateCreated
	StateTerminal
)

// String 返回状态名
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateFound:
		return "found"
	case StateCreated:
		return "created"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// validGroup 检查群组描述
func validGroup(g types.GroupRecord) error {
	if g.ID.IsEmpty() || g.Name == "" {
		return fmt.Errorf("%w: id and name required", ErrInvalidGroup)
	}
	return nil
}
