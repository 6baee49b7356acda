package lobby

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-lobby/config"
	"github.com/dep2p/go-lobby/internal/core/eventbus"
	"github.com/dep2p/go-lobby/internal/session"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/lib/log"
	"github.com/dep2p/go-lobby/pkg/types"
)

var logger = log.Logger("lobby")

// initializeTimeout Fx 应用启动超时
const initializeTimeout = 30 * time.Second

// Session 大厅会话
//
// Session 是用户交互的主入口，封装会话协调器及其依赖的全部组件。
// 可以多次 Start / Stop；Close 后不能再使用。
type Session struct {
	config   *config.Config
	app      *fx.App
	coord    *session.Coordinator
	registry *prometheus.Registry

	mu         sync.Mutex
	appStarted bool
	closed     bool
}

// New 创建会话
//
// 只装配组件，不访问网络。
func New(opts ...Option) (*Session, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	s := &Session{config: o.config}
	app, err := buildFxApp(o, s)
	if err != nil {
		return nil, err
	}
	s.app = app

	for _, l := range o.listeners {
		s.coord.AddListener(l)
	}
	return s, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期
// ════════════════════════════════════════════════════════════════════════════

// Start 启动会话：加入覆盖网络并开始查找群组
//
// 已启动时为空操作。覆盖网络启动失败时返回 ErrStartup。
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if !s.appStarted {
		initCtx, cancel := context.WithTimeout(ctx, initializeTimeout)
		defer cancel()
		if err := s.app.Start(initCtx); err != nil {
			logger.Error("组件初始化失败", "error", err)
			return fmt.Errorf("initialize failed: %w", err)
		}
		s.appStarted = true
	}

	return s.coord.Start(ctx)
}

// Stop 停止会话，可再次 Start
func (s *Session) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	return s.coord.Stop(ctx)
}

// Close 关闭会话并释放所有资源，可重复调用
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	err := s.coord.Close(ctx)

	// 组件在 New 时已构造，未启动过也要走一遍 Start/Stop 才能执行释放钩子
	if !s.appStarted {
		if startErr := s.app.Start(ctx); startErr != nil {
			return multierr.Append(err, startErr)
		}
		s.appStarted = true
	}
	if s.appStarted {
		err = multierr.Append(err, s.app.Stop(ctx))
		s.appStarted = false
	}
	logger.Info("会话已关闭")
	return err
}

// ════════════════════════════════════════════════════════════════════════════
//                              命令
// ════════════════════════════════════════════════════════════════════════════

// SearchPeers 扫描群组内的全部节点
func (s *Session) SearchPeers() error {
	return s.coord.SearchPeers()
}

// SearchPeersFiltered 按名称子串扫描节点
//
// filter 只允许字母、数字和下划线，否则返回 ErrInvalidFilter。
func (s *Session) SearchPeersFiltered(filter string) error {
	return s.coord.SearchPeersFiltered(filter)
}

// StopSearch 取消进行中的节点扫描
func (s *Session) StopSearch() {
	s.coord.StopSearch()
}

// Searching 是否有节点扫描在进行
func (s *Session) Searching() bool {
	return s.coord.Searching()
}

// SendMessage 向 receiverID 发送消息，未就绪或被拒绝时返回 false
func (s *Session) SendMessage(receiverID types.PeerID, payload string) bool {
	return s.coord.SendMessage(receiverID, payload)
}

// Peers 返回花名册快照，未就绪时为空
func (s *Session) Peers() types.Roster {
	return s.coord.Peers()
}

// Flush 清除缓存的群组与节点公告
func (s *Session) Flush() error {
	return s.coord.Flush()
}

// ════════════════════════════════════════════════════════════════════════════
//                              查询与订阅
// ════════════════════════════════════════════════════════════════════════════

// State 返回会话状态
func (s *Session) State() types.SessionState { return s.coord.State() }

// Phase 返回连接阶段
func (s *Session) Phase() types.SessionPhase { return s.coord.Phase() }

// IsStarted 是否已启动
func (s *Session) IsStarted() bool { return s.coord.IsStarted() }

// IsReady 是否已就绪
func (s *Session) IsReady() bool { return s.coord.IsReady() }

// LocalPeer 返回本节点
//
// 使用 adhoc 覆盖网络时，节点 ID 在组件初始化后才可用。
func (s *Session) LocalPeer() types.PeerRecord { return s.coord.LocalPeer() }

// Group 返回配置的群组
func (s *Session) Group() types.GroupRecord { return s.coord.Group() }

// ResolvedGroup 返回本次运行确定的群组
func (s *Session) ResolvedGroup() (types.GroupRecord, bool) { return s.coord.ResolvedGroup() }

// Channel 返回消息通道
func (s *Session) Channel() types.ChannelSpec { return s.coord.Channel() }

// Config 返回配置副本
func (s *Session) Config() *config.Config { return s.config.Clone() }

// AddListener 注册表现层监听者
func (s *Session) AddListener(l interfaces.SessionListener) { s.coord.AddListener(l) }

// RemoveListener 注销表现层监听者
func (s *Session) RemoveListener(l interfaces.SessionListener) { s.coord.RemoveListener(l) }

// Subscribe 注册原始事件监听者，函数可用 ListenerFunc 包装
func (s *Session) Subscribe(l interfaces.EventListener) { s.coord.Subscribe(l) }

// Unsubscribe 注销原始事件监听者
func (s *Session) Unsubscribe(l interfaces.EventListener) { s.coord.Unsubscribe(l) }

// ListenerFunc 将函数包装为原始事件监听者
//
// 每次调用返回一个新的监听者，注销时需使用同一个返回值。
func ListenerFunc(fn func(types.Event)) interfaces.EventListener {
	return eventbus.ListenerFunc(fn)
}

// Gatherer 返回指标注册表，指标未启用时为 nil
func (s *Session) Gatherer() prometheus.Gatherer {
	if s.registry == nil {
		return nil
	}
	return s.registry
}
