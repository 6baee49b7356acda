package session

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-lobby/internal/core/dispatch"
	"github.com/dep2p/go-lobby/internal/core/eventbus"
	"github.com/dep2p/go-lobby/internal/core/metrics"
	"github.com/dep2p/go-lobby/pkg/interfaces"
)

// Params 模块参数
type Params struct {
	fx.In

	Config    Config
	Directory interfaces.Directory
	Channels  interfaces.ChannelService
	Pool      *dispatch.Pool   `optional:"true"`
	Metrics   *metrics.Metrics `optional:"true"`
	Bus       *eventbus.Bus    `optional:"true"`
	Clock     clock.Clock      `optional:"true"`
}

// Module 返回 Fx 模块
//
// 协调器不随应用自动启动，由调用方显式 Start；应用停止时关闭协调器。
func Module() fx.Option {
	return fx.Module("session",
		fx.Provide(Provide),
		fx.Invoke(registerLifecycle),
	)
}

// Provide 创建协调器
func Provide(p Params) (*Coordinator, error) {
	return New(p.Config, p.Directory, p.Channels,
		WithPool(p.Pool),
		WithMetrics(p.Metrics),
		WithBus(p.Bus),
		WithClock(p.Clock),
	)
}

func registerLifecycle(lc fx.Lifecycle, c *Coordinator) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.Close(ctx)
		},
	})
}
