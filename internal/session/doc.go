// Package session 实现会话协调器
//
// Coordinator 驱动整个加入流程：
//
//	Idle ──Start──▶ Connecting(GroupSearching) ──EvtResolvedGroup──▶ Connecting(PeerDiscovery)
//	     ◀──Stop───                                ──EvtChannelReady──▶ Ready
//
// 每次 Start 都新建内部事件总线与全部子组件（群组解析器、节点目录、消息通道），
// 上一次运行残留的迟到事件因此不会被看到。子组件事件中需要对外可见的部分
// 原样转发到外部总线（来源 "session"），SessionListener 挂接在外部总线上。
//
// Close 之后协调器进入终态 Stopped，不能再启动。
package session
