package dispatch

import (
	"context"

	"go.uber.org/fx"
)

// Params 模块参数
type Params struct {
	fx.In

	Config Config           `optional:"true"`
	Hook   func(key string) `name:"dispatch_drop_hook" optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("dispatch",
		fx.Provide(ProvidePool),
		fx.Invoke(registerLifecycle),
	)
}

// ProvidePool 提供工作池
func ProvidePool(p Params) (*Pool, error) {
	cfg := p.Config
	if cfg.Workers == 0 && cfg.QueueSize == 0 {
		cfg = DefaultConfig()
	}
	var opts []Option
	if p.Hook != nil {
		opts = append(opts, WithDropHook(p.Hook))
	}
	return New(cfg, opts...)
}

// registerLifecycle 停止时关闭工作池
func registerLifecycle(lc fx.Lifecycle, pool *Pool) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			pool.Close()
			return nil
		},
	})
}
