package channel

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/dep2p/go-lobby/internal/core/dispatch"
	"github.com/dep2p/go-lobby/internal/core/eventbus"
	"github.com/dep2p/go-lobby/internal/core/metrics"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/lib/log"
	"github.com/dep2p/go-lobby/pkg/types"
)

var logger = log.Logger("channel")

// Source 通道在事件总线上的来源名
const Source = "channel"

// Option 通道选项
type Option func(*Channel)

// WithMetrics 设置指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Channel) {
		c.metrics = m
	}
}

// Channel 寻址消息通道
type Channel struct {
	spec    types.ChannelSpec
	svc     interfaces.ChannelService
	local   types.PeerRecord
	emitter *eventbus.Emitter
	metrics *metrics.Metrics

	mu       sync.Mutex
	inbound  interfaces.InboundPipe
	outbound interfaces.OutboundPipe
	opened   bool
	closed   bool
}

// New 创建通道
func New(spec types.ChannelSpec, svc interfaces.ChannelService, local types.PeerRecord,
	bus *eventbus.Bus, pool *dispatch.Pool, opts ...Option) (*Channel, error) {
	if spec.ID.IsEmpty() {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidSpec)
	}
	if spec.Type == "" {
		spec.Type = types.ChannelTypePropagate
	}

	c := &Channel{
		spec:    spec,
		svc:     svc,
		local:   local,
		emitter: bus.Emitter(Source, pool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Spec 返回通道描述
func (c *Channel) Spec() types.ChannelSpec {
	return c.spec
}

// ============================================================================
//                              打开与关闭
// ============================================================================

// Open 打开入站与出站端点
//
// 出站端点就绪后发布 EvtChannelReady。
func (c *Channel) Open() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.opened {
		c.mu.Unlock()
		return ErrAlreadyOpen
	}
	c.opened = true
	c.mu.Unlock()

	in, err := c.svc.OpenInbound(c.spec, c.receive)
	if err != nil {
		return fmt.Errorf("open inbound: %w", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = in.Close()
		return ErrClosed
	}
	c.inbound = in
	c.mu.Unlock()

	if err := c.svc.OpenOutbound(c.spec, c.ready); err != nil {
		return fmt.Errorf("open outbound: %w", err)
	}

	logger.Debug("通道已打开", "channel", c.spec.Name)
	return nil
}

// ready 出站端点就绪回调
func (c *Channel) ready(p interfaces.OutboundPipe) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		// 关闭后才到达的端点直接释放
		_ = p.Close()
		return
	}
	old := c.outbound
	c.outbound = p
	c.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}

	logger.Info("出站通道就绪", "channel", c.spec.Name)
	_ = c.emitter.EmitControl(types.NewEvtChannelReady(c.spec))
}

// Ready 出站端点是否可用
func (c *Channel) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && c.outbound != nil
}

// Close 关闭两个端点，可重复调用
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	in, out := c.inbound, c.outbound
	c.inbound, c.outbound = nil, nil
	c.mu.Unlock()

	var err error
	if in != nil {
		err = multierr.Append(err, in.Close())
	}
	if out != nil {
		err = multierr.Append(err, out.Close())
	}
	return err
}

// ============================================================================
//                              收发
// ============================================================================

// Send 向 receiverID 发送消息
//
// 出站未就绪、已关闭或传输层拒绝时返回 false。没有送达确认。
func (c *Channel) Send(receiverID types.PeerID, payload string) bool {
	c.mu.Lock()
	out := c.outbound
	closed := c.closed
	c.mu.Unlock()

	if closed || out == nil {
		c.metrics.MessageSent(metrics.SendNotReady)
		return false
	}

	msg := types.NewChannelMessage(c.local, receiverID, payload)
	if !msg.Complete() {
		c.metrics.MessageSent(metrics.SendRejected)
		return false
	}

	ok, err := out.Send(msg)
	switch {
	case err != nil:
		c.metrics.MessageSent(metrics.SendError)
		logger.Warn("发送消息失败", "receiver", log.TruncateID(string(receiverID), 8), "error", err)
		return false
	case !ok:
		c.metrics.MessageSent(metrics.SendRejected)
		return false
	}

	c.metrics.MessageSent(metrics.SendOK)
	return true
}

// receive 入站回调
func (c *Channel) receive(msg types.ChannelMessage) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()

	switch {
	case closed:
		c.metrics.MessageDropped(metrics.DropClosed)
		return
	case !msg.Complete():
		c.metrics.MessageDropped(metrics.DropIncomplete)
		return
	case msg.ReceiverID != c.local.ID:
		c.metrics.MessageDropped(metrics.DropNotForMe)
		return
	case msg.SenderID == c.local.ID:
		c.metrics.MessageDropped(metrics.DropOwnMessage)
		return
	}

	c.metrics.MessageReceived()
	logger.Debug("收到消息", "sender", log.TruncateID(string(msg.SenderID), 8))
	_ = c.emitter.Emit(types.NewEvtMessageReceived(msg))
}
