package interfaces

import (
	"github.com/dep2p/go-lobby/pkg/types"
)

// SessionListener 会话事件回调（展示层）
//
// 回调在分发协程上执行，同一来源的事件按发布顺序送达。
type SessionListener interface {
	// OnConnectionReady 会话就绪
	OnConnectionReady()

	// OnPeerFound 花名册变化
	OnPeerFound(roster types.Roster)

	// OnPeerSearchFinished 一轮节点扫描结束
	OnPeerSearchFinished(roster types.Roster)

	// OnMessageReceived 收到消息
	OnMessageReceived(senderID types.PeerID, senderName, payload string)
}

// NopSessionListener 空实现，可嵌入以只覆盖关心的回调
type NopSessionListener struct{}

func (NopSessionListener) OnConnectionReady() {}
func (NopSessionListener) OnPeerFound(types.Roster) {}
func (NopSessionListener) OnPeerSearchFinished(types.Roster) {}
func (NopSessionListener) OnMessageReceived(types.PeerID, string, string) {}
