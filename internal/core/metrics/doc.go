// Package metrics 提供 go-lobby 的 Prometheus 指标
//
// 指标统一挂在 lobby 命名空间下：
//
//	lobby_search_attempts_total{kind}        探测次数（group/peer）
//	lobby_groups_resolved_total{outcome}     群组确定方式（found/created）
//	lobby_roster_size                        当前花名册规模
//	lobby_messages_sent_total{result}        发送结果（ok/rejected/not_ready/error）
//	lobby_messages_received_total            接受的入站消息
//	lobby_messages_dropped_total{reason}     被过滤的入站消息
//	lobby_dispatch_dropped_total{key}        分发队列满丢弃的任务
//	lobby_overlay_envelopes_total{dir,type}  覆盖网络报文
//
// 所有方法在 nil 接收者上是空操作，组件可以不注入指标。
package metrics
