package eventbus

import (
	"context"

	"go.uber.org/fx"
)

// Module 返回 Fx 模块
//
// 提供进程级外部总线；应用停止时清空全部订阅，
// 避免停止后仍有监听者被回调。
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(NewBus),
		fx.Invoke(func(lc fx.Lifecycle, bus *Bus) {
			lc.Append(fx.StopHook(func(context.Context) error {
				bus.Reset()
				return nil
			}))
		}),
	)
}
