package adhoc

import (
	"sync/atomic"

	"github.com/dep2p/go-lobby/internal/overlay/wire"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/types"
)

// ============================================================================
//                              ChannelService 实现
// ============================================================================

// inboundPipe 入站端点
type inboundPipe struct {
	node      *Node
	channel   types.ChannelID
	onMessage func(types.ChannelMessage)
}

// Close 实现 interfaces.InboundPipe
func (p *inboundPipe) Close() error {
	n := p.node
	n.mu.Lock()
	defer n.mu.Unlock()

	pipes := n.inbound[p.channel]
	for i, existing := range pipes {
		if existing == p {
			n.inbound[p.channel] = append(pipes[:i:i], pipes[i+1:]...)
			break
		}
	}
	return nil
}

// OpenInbound 实现 interfaces.ChannelService
func (n *Node) OpenInbound(spec types.ChannelSpec, onMessage func(types.ChannelMessage)) (interfaces.InboundPipe, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.running {
		return nil, ErrNotStarted
	}

	p := &inboundPipe{node: n, channel: spec.ID, onMessage: onMessage}
	n.inbound[spec.ID] = append(n.inbound[spec.ID], p)
	return p, nil
}

// outboundPipe 出站端点
type outboundPipe struct {
	node    *Node
	channel types.ChannelID
	closed  atomic.Bool
}

// OpenOutbound 实现 interfaces.ChannelService
//
// 组播通道无需建连，就绪通知在独立 goroutine 上立即送达。
func (n *Node) OpenOutbound(spec types.ChannelSpec, onReady func(interfaces.OutboundPipe)) error {
	if !n.Running() {
		return ErrNotStarted
	}

	p := &outboundPipe{node: n, channel: spec.ID}
	n.pending.Add(1)
	go func() {
		defer n.pending.Done()
		onReady(p)
	}()
	return nil
}

// Send 实现 interfaces.OutboundPipe
//
// 报文发往组播组，同时直接投递给本节点的入站端点。
func (p *outboundPipe) Send(msg types.ChannelMessage) (bool, error) {
	if p.closed.Load() {
		return false, ErrPipeClosed
	}

	n := p.node
	err := n.send(&wire.Envelope{
		Type: wire.TypePipe,
		Pipe: &wire.Pipe{ChannelID: p.channel, Message: msg},
	})
	if err != nil {
		return false, err
	}

	n.pending.Add(1)
	go func() {
		defer n.pending.Done()
		n.deliverPipe(p.channel, msg)
	}()
	return true, nil
}

// Close 实现 interfaces.OutboundPipe
func (p *outboundPipe) Close() error {
	p.closed.Store(true)
	return nil
}
