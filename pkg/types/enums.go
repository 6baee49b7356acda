package types

// ============================================================================
//                              SessionState - 会话状态
// ============================================================================

// SessionState 会话协调器状态
type SessionState int

const (
	// SessionIdle 未启动（或已停止，可再次启动）
	SessionIdle SessionState = iota
	// SessionConnecting 正在查找群组或建立通道
	SessionConnecting
	// SessionReady 通道就绪，可搜索节点和发送消息
	SessionReady
	// SessionStopped 已关闭，不可再启动
	SessionStopped
)

// String 返回会话状态的字符串表示
func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionConnecting:
		return "connecting"
	case SessionReady:
		return "ready"
	case SessionStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              SessionPhase - 连接阶段
// ============================================================================

// SessionPhase Connecting 状态下的子阶段
type SessionPhase int

const (
	// PhaseNone 不在连接过程中
	PhaseNone SessionPhase = iota
	// PhaseGroupSearching 正在查找群组
	PhaseGroupSearching
	// PhasePeerDiscovery 群组已确定，正在建立通道与发现节点
	PhasePeerDiscovery
)

// String 返回阶段的字符串表示
func (p SessionPhase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseGroupSearching:
		return "group-searching"
	case PhasePeerDiscovery:
		return "peer-discovery"
	default:
		return "unknown"
	}
}
