package lobby

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-lobby/internal/core/dispatch"
	"github.com/dep2p/go-lobby/internal/core/eventbus"
	"github.com/dep2p/go-lobby/internal/core/metrics"
	"github.com/dep2p/go-lobby/internal/overlay/adhoc"
	"github.com/dep2p/go-lobby/internal/overlay/cache"
	"github.com/dep2p/go-lobby/internal/session"
	"github.com/dep2p/go-lobby/pkg/interfaces"
)

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. 指标（可选）→ 事件总线 → 分发工作池
//  2. 覆盖网络：自定义目录，或 cache + adhoc
//  3. 会话协调器
func buildFxApp(o *options, s *Session) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	cfg := o.config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	modules := []fx.Option{
		fx.Supply(sessionConfig(cfg)),
		fx.Supply(dispatchConfig(cfg)),
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 指标（条件加载）
	// ════════════════════════════════════════════════════════════════════════
	if cfg.Metrics.Enable {
		reg := o.registry
		if reg == nil {
			reg = prometheus.NewRegistry()
		}
		s.registry = reg
		modules = append(modules,
			fx.Provide(func() prometheus.Registerer { return reg }),
			metrics.Module(),
		)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 3. 基础组件（必须）
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		eventbus.Module(),
		dispatch.Module(),
	)
	if o.clock != nil {
		clk := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 4. 覆盖网络
	// ════════════════════════════════════════════════════════════════════════
	if o.directory != nil {
		dir, chsvc := o.directory, o.channels
		modules = append(modules, fx.Provide(
			func() interfaces.Directory { return dir },
			func() interfaces.ChannelService { return chsvc },
		))
	} else {
		modules = append(modules,
			fx.Supply(cacheConfig(cfg)),
			fx.Supply(adhocConfig(cfg)),
			cache.Module(),
			adhoc.Module(),
		)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 5. 会话协调器
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		session.Module(),
		fx.Populate(&s.coord),
	)

	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 6. Fx 配置
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	return app, nil
}
