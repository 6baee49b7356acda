// Package dispatch 实现按键分片的有界工作池
//
// 所有对外通知（群组发现、花名册变化、消息到达）都经由工作池分发，
// 网络回调线程只负责投递，不会被监听者阻塞。
//
// 同一个键总是落在同一个 worker 上（murmur3 哈希取模），
// 因此同一发布组件的事件保持发布顺序。队列有界，满时丢弃并记录日志。
package dispatch
