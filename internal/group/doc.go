// Package group 实现群组解析器
//
// 解析器在覆盖网络中查找指定名称的群组，找不到时用固定 ID 创建。
//
// # 状态机
//
//	Idle ──Resolve──> Searching ──发现群组──> Found ───┐
//	                      │                            ├──Stop──> Terminal
//	                      └──尝试用尽──────> Created ──┘
//
// 每次探测先查本地缓存，已知群组数低于 MaxGroups 时再发起一次远程查询。
// 首个被发现的群组胜出，之后的重复结果不影响解析结果。
// Found 与 Created 的转换在同一把锁下判定，每次 Resolve 恰好产生其中一个。
//
// 群组 ID 固定，两个节点同时创建时目录按 ID 去重，最终收敛到同一个群组。
//
// # 事件（来源 "group"）
//
//   - EvtGroupFound    已知群组集合增长
//   - EvtResolvedGroup 解析完成（Created 标识是否由本节点创建）
package group
