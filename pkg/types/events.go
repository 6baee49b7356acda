package types

import (
	"time"
)

// ============================================================================
//                              Event - 事件接口
// ============================================================================

// Event 基础事件接口
type Event interface {
	// Type 返回事件类型
	Type() string

	// Timestamp 返回事件时间戳
	Timestamp() time.Time
}

// BaseEvent 基础事件实现
type BaseEvent struct {
	EventType string
	Time      time.Time
}

// Type 返回事件类型
func (e BaseEvent) Type() string {
	return e.EventType
}

// Timestamp 返回事件时间戳
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// NewBaseEvent 创建基础事件
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
	}
}

// 事件类型常量
const (
	EventGroupFound         = "group.found"
	EventResolvedGroup      = "group.resolved"
	EventPeerFound          = "peer.found"
	EventPeerSearchFinished = "peer.search_finished"
	EventMessageReceived    = "message.received"
	EventChannelReady       = "channel.ready"
	EventConnectionReady    = "session.connection_ready"
	EventStateChanged       = "session.state_changed"
)

// ============================================================================
//                              群组事件
// ============================================================================

// EvtGroupFound 已知群组集合增长
type EvtGroupFound struct {
	BaseEvent
	// Groups 当前已知群组（快照）
	Groups []GroupRecord
}

// NewEvtGroupFound 创建群组发现事件
func NewEvtGroupFound(groups []GroupRecord) *EvtGroupFound {
	snapshot := make([]GroupRecord, len(groups))
	copy(snapshot, groups)
	return &EvtGroupFound{BaseEvent: NewBaseEvent(EventGroupFound), Groups: snapshot}
}

// EvtResolvedGroup 群组已确定
type EvtResolvedGroup struct {
	BaseEvent
	Group GroupRecord
	// Created 为 true 表示群组由本节点创建
	Created bool
}

// NewEvtResolvedGroup 创建群组确定事件
func NewEvtResolvedGroup(group GroupRecord, created bool) *EvtResolvedGroup {
	return &EvtResolvedGroup{BaseEvent: NewBaseEvent(EventResolvedGroup), Group: group, Created: created}
}

// ============================================================================
//                              节点事件
// ============================================================================

// EvtPeerFound 花名册规模变化
type EvtPeerFound struct {
	BaseEvent
	// Roster 花名册副本
	Roster Roster
}

// NewEvtPeerFound 创建节点发现事件（内部复制花名册）
func NewEvtPeerFound(r Roster) *EvtPeerFound {
	return &EvtPeerFound{BaseEvent: NewBaseEvent(EventPeerFound), Roster: r.Clone()}
}

// EvtPeerSearchFinished 一轮节点扫描结束
type EvtPeerSearchFinished struct {
	BaseEvent
	Roster Roster
	// Attempts 已执行的尝试次数
	Attempts int
}

// NewEvtPeerSearchFinished 创建扫描结束事件（内部复制花名册）
func NewEvtPeerSearchFinished(r Roster, attempts int) *EvtPeerSearchFinished {
	return &EvtPeerSearchFinished{
		BaseEvent: NewBaseEvent(EventPeerSearchFinished),
		Roster:    r.Clone(),
		Attempts:  attempts,
	}
}

// ============================================================================
//                              消息与通道事件
// ============================================================================

// EvtMessageReceived 收到寻址给本节点的消息
type EvtMessageReceived struct {
	BaseEvent
	SenderID   PeerID
	SenderName string
	Payload    string
}

// NewEvtMessageReceived 创建消息接收事件
func NewEvtMessageReceived(msg ChannelMessage) *EvtMessageReceived {
	return &EvtMessageReceived{
		BaseEvent:  NewBaseEvent(EventMessageReceived),
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		Payload:    msg.Payload,
	}
}

// EvtChannelReady 出站通道就绪
type EvtChannelReady struct {
	BaseEvent
	Channel ChannelSpec
}

// NewEvtChannelReady 创建通道就绪事件
func NewEvtChannelReady(spec ChannelSpec) *EvtChannelReady {
	return &EvtChannelReady{BaseEvent: NewBaseEvent(EventChannelReady), Channel: spec}
}

// ============================================================================
//                              会话事件
// ============================================================================

// EvtConnectionReady 会话就绪（群组确定且通道可用）
type EvtConnectionReady struct {
	BaseEvent
	Group GroupRecord
	Local PeerRecord
}

// NewEvtConnectionReady 创建会话就绪事件
func NewEvtConnectionReady(group GroupRecord, local PeerRecord) *EvtConnectionReady {
	return &EvtConnectionReady{BaseEvent: NewBaseEvent(EventConnectionReady), Group: group, Local: local}
}

// EvtStateChanged 会话状态变更
type EvtStateChanged struct {
	BaseEvent
	From SessionState
	To   SessionState
}

// NewEvtStateChanged 创建状态变更事件
func NewEvtStateChanged(from, to SessionState) *EvtStateChanged {
	return &EvtStateChanged{BaseEvent: NewBaseEvent(EventStateChanged), From: from, To: to}
}
