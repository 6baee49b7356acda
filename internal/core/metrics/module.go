package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Params 指标依赖参数
type Params struct {
	fx.In

	Registerer prometheus.Registerer `optional:"true"`
}

// Result 模块输出
type Result struct {
	fx.Out

	Metrics  *Metrics
	DropHook func(key string) `name:"dispatch_drop_hook"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(Provide),
	)
}

// Provide 创建指标，并向 dispatch 提供丢弃计数回调
func Provide(p Params) (Result, error) {
	m, err := New(p.Registerer)
	if err != nil {
		return Result{}, err
	}
	return Result{Metrics: m, DropHook: m.DispatchDropped}, nil
}
