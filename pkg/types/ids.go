package types

// ============================================================================
//                              PeerID - 节点标识
// ============================================================================

// PeerID 节点唯一标识符
//
// 由覆盖网络签发（例如 urn:lobby:peer:<uuid>），本包不关心其内部格式。
type PeerID string

// String 返回 PeerID 字符串
func (id PeerID) String() string {
	return string(id)
}

// ShortString 返回 PeerID 的短字符串表示（日志用）
//
// 对于 urn 形式的 ID，取最后一段的前 8 个字符。
func (id PeerID) ShortString() string {
	s := string(id)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ':' {
			s = s[i+1:]
			break
		}
	}
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// IsEmpty 检查 PeerID 是否为空
func (id PeerID) IsEmpty() bool {
	return id == ""
}

// ============================================================================
//                              GroupID - 群组标识
// ============================================================================

// GroupID 逻辑群组标识符
type GroupID string

// String 返回 GroupID 字符串
func (id GroupID) String() string {
	return string(id)
}

// IsEmpty 检查 GroupID 是否为空
func (id GroupID) IsEmpty() bool {
	return id == ""
}

// ============================================================================
//                              ChannelID - 通道标识
// ============================================================================

// ChannelID 广播通道标识符
type ChannelID string

// String 返回 ChannelID 字符串
func (id ChannelID) String() string {
	return string(id)
}

// IsEmpty 检查 ChannelID 是否为空
func (id ChannelID) IsEmpty() bool {
	return id == ""
}
