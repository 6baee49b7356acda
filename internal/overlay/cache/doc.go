// Package cache 提供覆盖网络的公告缓存
//
// 公告按 (类型, ID) 去重：同一群组被两个节点各自创建时，
// 由于群组 ID 固定，目录中只会保留一条记录。
//
// 实现：
//   - MemoryStore: 内存 map，按注入的时钟判断过期
//   - BadgerStore: BadgerDB，条目 TTL 由 badger 管理，可持久化节点身份
//
// 键布局（BadgerStore）：
//
//	adv/<kind>/<id>   公告（wire.MarshalAdvertisement 编码）
//	meta/<key>        元数据（例如本节点 ID）
package cache
