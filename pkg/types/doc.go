// Package types 定义 go-lobby 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他 go-lobby 内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - ids.go           - PeerID, GroupID, ChannelID
//   - records.go       - PeerRecord, Roster, GroupRecord, ChannelSpec, ChannelMessage
//   - advertisement.go - AdvKind, Advertisement, 属性匹配
//   - enums.go         - SessionState, SessionPhase
//   - events.go        - 所有事件类型（群组、节点、消息、会话）
//
// # 事件类型 (EvtXXX)
//
//   - EvtGroupFound         - 发现群组（已知群组集合增长）
//   - EvtResolvedGroup      - 群组已确定（发现或创建）
//   - EvtPeerFound          - 花名册规模变化
//   - EvtPeerSearchFinished - 一轮节点扫描结束
//   - EvtMessageReceived    - 收到寻址给本节点的消息
//   - EvtChannelReady       - 出站通道就绪
//   - EvtConnectionReady    - 会话就绪
//   - EvtStateChanged       - 会话状态变更
package types
