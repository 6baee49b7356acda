// Package peers 实现群组内的节点目录
//
// Directory 负责在已确定的群组内宣告本节点，并查找同组的其他节点：
//
//   - Announce 将本节点的通道公告与节点公告发布到本地和远端
//   - Search 做一次本地查找，花名册未满时再做一次远程查找
//   - Sweep 以有界重试调度反复执行 Search，结束时发布 EvtPeerSearchFinished
//
// 花名册只由发现回调修改，对外只交出副本。本节点自身与其他群组的节点
// 永远不会进入花名册。
//
// 事件以 "peers" 为来源发布到事件总线。
package peers
