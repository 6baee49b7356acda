package lobby

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-lobby/config"
	"github.com/dep2p/go-lobby/pkg/interfaces"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	config *config.Config

	// 自定义覆盖网络（测试或嵌入用），为空时使用 adhoc 组播覆盖网络
	directory interfaces.Directory
	channels  interfaces.ChannelService

	listeners []interfaces.SessionListener
	registry  *prometheus.Registry
	clock     clock.Clock

	userFxOptions []fx.Option
}

func newOptions() *options {
	return &options{config: config.NewConfig()}
}

// WithConfig 使用完整配置
//
// 应作为第一个选项，之后的选项在其基础上修改。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("config is nil")
		}
		o.config = cfg.Clone()
		return nil
	}
}

// WithPeerName 设置本节点显示名称
func WithPeerName(name string) Option {
	return func(o *options) error {
		if name == "" {
			return fmt.Errorf("peer name cannot be empty")
		}
		o.config.Identity.PeerName = name
		return nil
	}
}

// WithGroup 设置要加入的群组
func WithGroup(id, name, description string) Option {
	return func(o *options) error {
		if id == "" || name == "" {
			return fmt.Errorf("group id and name cannot be empty")
		}
		o.config.Group.ID = id
		o.config.Group.Name = name
		o.config.Group.Description = description
		return nil
	}
}

// WithQueueSearchUntilReady 设置就绪前的节点查找是否排队
func WithQueueSearchUntilReady(queue bool) Option {
	return func(o *options) error {
		o.config.Session.QueueSearchUntilReady = queue
		return nil
	}
}

// WithDirectory 使用自定义覆盖网络
//
// dir 与 chsvc 通常是同一个对象，例如 memnet.Node。
func WithDirectory(dir interfaces.Directory, chsvc interfaces.ChannelService) Option {
	return func(o *options) error {
		if dir == nil || chsvc == nil {
			return ErrIncompleteDirectory
		}
		o.directory = dir
		o.channels = chsvc
		return nil
	}
}

// WithListener 注册表现层监听者
func WithListener(l interfaces.SessionListener) Option {
	return func(o *options) error {
		if l != nil {
			o.listeners = append(o.listeners, l)
		}
		return nil
	}
}

// WithMetricsRegistry 指定指标注册表
//
// 未指定且指标启用时使用独立的新注册表，可通过 Session.Gatherer 读取。
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(o *options) error {
		o.registry = reg
		o.config.Metrics.Enable = reg != nil || o.config.Metrics.Enable
		return nil
	}
}

// WithClock 指定调度时钟（测试用）
func WithClock(clk clock.Clock) Option {
	return func(o *options) error {
		o.clock = clk
		return nil
	}
}

// WithFxOption 追加 Fx 选项
func WithFxOption(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
