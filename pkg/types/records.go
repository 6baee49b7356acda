package types

import "sort"

// ============================================================================
//                              PeerRecord - 节点记录
// ============================================================================

// PeerRecord 已发现的节点
type PeerRecord struct {
	// ID 节点标识（唯一）
	ID PeerID

	// DisplayName 显示名称
	DisplayName string
}

// ============================================================================
//                              Roster - 花名册
// ============================================================================

// Roster 群组内已发现节点的集合（ID -> 显示名称）
//
// 花名册由其所有者独占修改，对外只交付副本。
type Roster map[PeerID]string

// Clone 返回花名册的防御性副本
//
// nil 花名册返回空的非 nil 副本。
func (r Roster) Clone() Roster {
	out := make(Roster, len(r))
	for id, name := range r {
		out[id] = name
	}
	return out
}

// IDs 返回按字典序排序的节点 ID 列表
func (r Roster) IDs() []PeerID {
	ids := make([]PeerID, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Records 返回按 ID 排序的节点记录列表
func (r Roster) Records() []PeerRecord {
	out := make([]PeerRecord, 0, len(r))
	for _, id := range r.IDs() {
		out = append(out, PeerRecord{ID: id, DisplayName: r[id]})
	}
	return out
}

// FindByName 按显示名称查找节点（大小写敏感，返回排序后的第一个匹配）
func (r Roster) FindByName(name string) (PeerID, bool) {
	for _, id := range r.IDs() {
		if r[id] == name {
			return id, true
		}
	}
	return "", false
}

// ============================================================================
//                              GroupRecord - 群组记录
// ============================================================================

// GroupRecord 逻辑群组描述
type GroupRecord struct {
	ID          GroupID
	Name        string
	Description string
}

// IsEmpty 检查群组记录是否为空
func (g GroupRecord) IsEmpty() bool {
	return g.ID.IsEmpty()
}

// ============================================================================
//                              ChannelSpec - 通道描述
// ============================================================================

// ChannelType 通道类型
type ChannelType string

// ChannelTypePropagate 广播型通道：消息送达所有监听者，由接收方自行过滤
const ChannelTypePropagate ChannelType = "propagate"

// ChannelSpec 群组共享的广播通道描述
type ChannelSpec struct {
	ID   ChannelID
	Name string
	Type ChannelType
}

// ============================================================================
//                              ChannelMessage - 通道消息
// ============================================================================

// ChannelMessage 通道上的寻址消息
//
// 值类型，构造后不再修改。
type ChannelMessage struct {
	SenderID   PeerID
	SenderName string
	ReceiverID PeerID
	Payload    string
}

// NewChannelMessage 构造消息
func NewChannelMessage(sender PeerRecord, receiver PeerID, payload string) ChannelMessage {
	return ChannelMessage{
		SenderID:   sender.ID,
		SenderName: sender.DisplayName,
		ReceiverID: receiver,
		Payload:    payload,
	}
}

// Complete 检查寻址字段是否齐全（负载允许为空串）
func (m ChannelMessage) Complete() bool {
	return m.SenderID != "" && m.ReceiverID != ""
}
