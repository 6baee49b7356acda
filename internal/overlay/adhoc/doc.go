// Package adhoc 实现基于 UDP 组播的局域网覆盖网络
//
// 节点加入同一个组播组（默认 239.255.42.99:9789），以 wire 报文交换公告、
// 查询与通道消息，不需要任何中心目录。
//
// # 报文处理
//
//   - PUBLISH  接收方按公告的 expiration 写入本地缓存
//   - QUERY    接收方用本地缓存应答，RESPONSE 寻址给查询方
//   - RESPONSE 仅查询方处理：写入缓存并回调 DiscoveryListener
//   - PIPE     投递给本节点在该通道上的所有入站端点
//
// 本节点发出的报文 ID 记录在 LRU 中，组播回环收到的副本直接丢弃；
// 本节点发出的 PIPE 报文在发送时直接投递给本地入站端点。
//
// # 身份
//
// 节点 ID 形如 urn:lobby:peer:<uuid>，首次运行时签发并保存在缓存的元数据中，
// 使用 badger 持久化时重启后保持不变。
//
// # 限流
//
// QueryRemote 经 rate.Limiter 限流，超出时返回 ErrRateLimited，
// 调用方按一次无结果的尝试处理。
package adhoc
