package adhoc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"

	"github.com/dep2p/go-lobby/internal/overlay/wire"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/types"
)

// ============================================================================
//                              发送
// ============================================================================

// send 填充报文头并发送到组播组
func (n *Node) send(env *wire.Envelope) error {
	if !n.Running() {
		return ErrNotStarted
	}

	env.ID = uuid.New().String()
	env.From = n.local.ID
	env.FromName = n.local.DisplayName

	data, err := wire.Marshal(env)
	if err != nil {
		return err
	}
	if len(data) > MaxPacketSize {
		return fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, len(data))
	}

	// 回环副本按 ID 丢弃
	n.seen.Add(env.ID, struct{}{})

	if err = n.write(data); err != nil {
		return err
	}
	n.metrics.Envelope("out", env.Type.String())
	return nil
}

// writeUDP 写入发送套接字
func (n *Node) writeUDP(data []byte) error {
	n.mu.Lock()
	conn, addr := n.sendConn, n.groupAddr
	n.mu.Unlock()

	if conn == nil {
		return ErrNotStarted
	}
	if _, err := conn.WriteToUDP(data, addr); err != nil {
		return fmt.Errorf("adhoc: write: %w", err)
	}
	return nil
}

// ============================================================================
//                              接收
// ============================================================================

// readLoop 读取组播报文直到连接关闭
func (n *Node) readLoop(ctx context.Context, conn *net.UDPConn) error {
	buf := make([]byte, MaxPacketSize+1)
	for {
		size, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			logger.Debug("读取组播报文失败", "error", err)
			continue
		}
		if size > MaxPacketSize {
			logger.Debug("丢弃超长报文", "from", src.String(), "size", size)
			continue
		}

		data := make([]byte, size)
		copy(data, buf[:size])
		n.handle(data)
	}
}

// handle 处理一个原始报文
func (n *Node) handle(data []byte) {
	env, err := wire.Unmarshal(data)
	if err != nil {
		logger.Debug("丢弃无法解析的报文", "error", err)
		return
	}
	if n.seen.Contains(env.ID) {
		return
	}
	n.seen.Add(env.ID, struct{}{})
	if env.From == n.local.ID {
		return
	}
	n.metrics.Envelope("in", env.Type.String())

	switch env.Type {
	case wire.TypePublish:
		n.handlePublish(env)
	case wire.TypeQuery:
		n.handleQuery(env)
	case wire.TypeResponse:
		n.handleResponse(env)
	case wire.TypePipe:
		n.deliverPipe(env.Pipe.ChannelID, env.Pipe.Message)
	}
}

// handlePublish 缓存远端公告
func (n *Node) handlePublish(env *wire.Envelope) {
	for _, adv := range env.Advs {
		if err := n.store.Put(adv, adv.Expiration); err != nil {
			logger.Debug("缓存公告失败", "key", adv.Key(), "error", err)
		}
	}
}

// handleQuery 用本地缓存应答查询
func (n *Node) handleQuery(env *wire.Envelope) {
	q := env.Query
	advs, err := n.store.Query(q.Kind, q.Attr, q.Value, q.Max)
	if err != nil {
		logger.Debug("本地查询失败", "error", err)
		return
	}
	if len(advs) == 0 {
		return
	}

	err = n.send(&wire.Envelope{
		Type: wire.TypeResponse,
		To:   env.From,
		Advs: advs,
	})
	if err != nil {
		logger.Debug("应答查询失败", "to", env.From.ShortString(), "error", err)
	}
}

// handleResponse 缓存应答并回调发现监听者
func (n *Node) handleResponse(env *wire.Envelope) {
	if env.To != n.local.ID || len(env.Advs) == 0 {
		return
	}

	for _, adv := range env.Advs {
		if err := n.store.Put(adv, adv.Expiration); err != nil {
			logger.Debug("缓存应答公告失败", "key", adv.Key(), "error", err)
		}
	}

	n.mu.Lock()
	listeners := make([]interfaces.DiscoveryListener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	resp := interfaces.DiscoveryResponse{
		From:           env.From,
		Kind:           env.Advs[0].Kind,
		Advertisements: env.Advs,
	}
	for _, l := range listeners {
		l.DiscoveryEvent(resp)
	}
}

// deliverPipe 投递给本节点在通道上的入站端点
func (n *Node) deliverPipe(channel types.ChannelID, msg types.ChannelMessage) {
	n.mu.Lock()
	pipes := make([]*inboundPipe, len(n.inbound[channel]))
	copy(pipes, n.inbound[channel])
	n.mu.Unlock()

	for _, p := range pipes {
		p.onMessage(msg)
	}
}
