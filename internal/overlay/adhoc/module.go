package adhoc

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-lobby/internal/core/metrics"
	"github.com/dep2p/go-lobby/internal/overlay/cache"
	"github.com/dep2p/go-lobby/pkg/interfaces"
)

// Params 模块参数
type Params struct {
	fx.In

	Config  Config           `optional:"true"`
	Store   cache.Store
	Metrics *metrics.Metrics `optional:"true"`
}

// Result 模块输出
type Result struct {
	fx.Out

	Node      *Node
	Directory interfaces.Directory
	Channels  interfaces.ChannelService
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("overlay.adhoc",
		fx.Provide(Provide),
		fx.Invoke(registerLifecycle),
	)
}

// Provide 创建 adhoc 节点
//
// 节点由会话协调器启动，这里只负责在应用停止时兜底关闭。
func Provide(p Params) (Result, error) {
	cfg := p.Config
	if cfg.Group == "" {
		cfg = DefaultConfig()
	}
	n, err := New(cfg, p.Store, WithMetrics(p.Metrics))
	if err != nil {
		return Result{}, err
	}
	return Result{Node: n, Directory: n, Channels: n}, nil
}

func registerLifecycle(lc fx.Lifecycle, n *Node) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return n.Stop(ctx)
		},
	})
}
