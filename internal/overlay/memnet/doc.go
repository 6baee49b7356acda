// Package memnet 提供进程内覆盖网络
//
// Network 中的每个 Node 同时实现 interfaces.Directory 与
// interfaces.ChannelService，语义与 adhoc 覆盖网络一致：
//   - 远程发布、远程查询、通道发送都是异步的
//   - 通道消息送达所有已启动节点（包括发送方自己）的入站端点
//   - 每个节点有独立的公告缓存
//
// 节点记录调用计数并支持故障注入（启动失败、查询失败、发送被拒），
// 供测试与演示使用。
package memnet
