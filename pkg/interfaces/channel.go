package interfaces

import (
	"github.com/dep2p/go-lobby/pkg/types"
)

// ============================================================================
//                              ChannelService - 广播通道
// ============================================================================

// ChannelService 广播通道原语
//
// 通道为传播型：发送到通道的消息会送达通道上的所有入站端点
// （包括发送方自己的），过滤由接收方完成。
type ChannelService interface {
	// OpenInbound 打开入站端点
	//
	// onMessage 在覆盖网络 goroutine 上调用。
	OpenInbound(spec types.ChannelSpec, onMessage func(types.ChannelMessage)) (InboundPipe, error)

	// OpenOutbound 打开出站端点
	//
	// 就绪通知通过 onReady 异步送达。
	OpenOutbound(spec types.ChannelSpec, onReady func(OutboundPipe)) error
}

// InboundPipe 入站端点
type InboundPipe interface {
	Close() error
}

// OutboundPipe 出站端点
type OutboundPipe interface {
	// Send 发送消息
	//
	// 返回值表示传输层是否接受该消息，不代表对方已收到。
	Send(msg types.ChannelMessage) (bool, error)

	Close() error
}
