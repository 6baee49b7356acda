package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// metricNamespace 指标命名空间
const metricNamespace = "lobby"

// 丢弃原因
const (
	DropNotForMe   = "not_for_me"
	DropOwnMessage = "own_message"
	DropIncomplete = "incomplete"
	DropClosed     = "closed"
)

// 发送结果
const (
	SendOK       = "ok"
	SendRejected = "rejected"
	SendNotReady = "not_ready"
	SendError    = "error"
)

// Metrics 指标集合
type Metrics struct {
	searchAttempts   *prometheus.CounterVec
	groupsResolved   *prometheus.CounterVec
	rosterSize       prometheus.Gauge
	messagesSent     *prometheus.CounterVec
	messagesReceived prometheus.Counter
	messagesDropped  *prometheus.CounterVec
	dispatchDropped  *prometheus.CounterVec
	envelopes        *prometheus.CounterVec
}

// New 创建指标并注册到 reg
//
// reg 为 nil 时只创建不注册。重复注册同名指标时复用已注册的收集器。
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		searchAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "search_attempts_total",
				Help:      "搜索探测次数",
			},
			[]string{"kind"},
		),
		groupsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "groups_resolved_total",
				Help:      "群组确定次数",
			},
			[]string{"outcome"},
		),
		rosterSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricNamespace,
				Name:      "roster_size",
				Help:      "当前花名册规模",
			},
		),
		messagesSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "messages_sent_total",
				Help:      "发送消息数",
			},
			[]string{"result"},
		),
		messagesReceived: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "messages_received_total",
				Help:      "接受的入站消息数",
			},
		),
		messagesDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "messages_dropped_total",
				Help:      "被过滤的入站消息数",
			},
			[]string{"reason"},
		),
		dispatchDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "dispatch_dropped_total",
				Help:      "分发队列满丢弃的任务数",
			},
			[]string{"key"},
		),
		envelopes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "overlay_envelopes_total",
				Help:      "覆盖网络报文数",
			},
			[]string{"dir", "type"},
		),
	}

	if reg == nil {
		return m, nil
	}

	if err := register(reg, &m.searchAttempts); err != nil {
		return nil, err
	}
	if err := register(reg, &m.groupsResolved); err != nil {
		return nil, err
	}
	if err := register(reg, &m.rosterSize); err != nil {
		return nil, err
	}
	if err := register(reg, &m.messagesSent); err != nil {
		return nil, err
	}
	if err := register(reg, &m.messagesReceived); err != nil {
		return nil, err
	}
	if err := register(reg, &m.messagesDropped); err != nil {
		return nil, err
	}
	if err := register(reg, &m.dispatchDropped); err != nil {
		return nil, err
	}
	if err := register(reg, &m.envelopes); err != nil {
		return nil, err
	}
	return m, nil
}

// register 注册收集器，已注册时替换为已有实例
func register[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			*c = existing
			return nil
		}
	}
	return err
}

// ============================================================================
//                              记录方法
// ============================================================================

// SearchAttempt 记录一次探测
func (m *Metrics) SearchAttempt(kind string) {
	if m == nil {
		return
	}
	m.searchAttempts.WithLabelValues(kind).Inc()
}

// GroupResolved 记录群组确定方式
func (m *Metrics) GroupResolved(created bool) {
	if m == nil {
		return
	}
	outcome := "found"
	if created {
		outcome = "created"
	}
	m.groupsResolved.WithLabelValues(outcome).Inc()
}

// RosterSize 记录花名册规模
func (m *Metrics) RosterSize(n int) {
	if m == nil {
		return
	}
	m.rosterSize.Set(float64(n))
}

// MessageSent 记录发送结果
func (m *Metrics) MessageSent(result string) {
	if m == nil {
		return
	}
	m.messagesSent.WithLabelValues(result).Inc()
}

// MessageReceived 记录接受的入站消息
func (m *Metrics) MessageReceived() {
	if m == nil {
		return
	}
	m.messagesReceived.Inc()
}

// MessageDropped 记录被过滤的入站消息
func (m *Metrics) MessageDropped(reason string) {
	if m == nil {
		return
	}
	m.messagesDropped.WithLabelValues(reason).Inc()
}

// DispatchDropped 记录分发丢弃
func (m *Metrics) DispatchDropped(key string) {
	if m == nil {
		return
	}
	m.dispatchDropped.WithLabelValues(key).Inc()
}

// Envelope 记录覆盖网络报文（dir 为 in/out）
func (m *Metrics) Envelope(dir, typ string) {
	if m == nil {
		return
	}
	m.envelopes.WithLabelValues(dir, typ).Inc()
}
