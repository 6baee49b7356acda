package cache

import (
	"context"

	"go.uber.org/fx"
)

// Params 模块参数
type Params struct {
	fx.In

	Config Config `optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("cache",
		fx.Provide(ProvideStore),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideStore 提供公告缓存
func ProvideStore(p Params) (Store, error) {
	return Open(p.Config)
}

// registerLifecycle 停止时关闭缓存
func registerLifecycle(lc fx.Lifecycle, store Store) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return store.Close()
		},
	})
}
