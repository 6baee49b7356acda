// Package interfaces 定义 go-lobby 的公共接口
//
// # Overlay 接口
//
// 覆盖网络能力，由 internal/overlay 下的实现提供：
//   - directory.go - 公告目录（发布、本地/远程查询、发现回调）
//   - channel.go   - 广播通道（入站/出站端点）
//
// # Session 接口
//
// 面向展示层：
//   - session.go   - SessionListener 回调
//   - event.go     - EventListener 原始事件监听者
//
// 所有实现都必须是并发安全的。远程查询结果和入站消息在覆盖网络的
// goroutine 上回调，回调实现不应阻塞。
package interfaces
