// Package lobby 提供局域网内的群组发现与寻址消息
//
// 一个大厅会话在没有中心目录的网络上完成三件事：
//
//   - 找到（或创建）指定名称的群组
//   - 找到群组内的其他节点
//   - 建立广播通道，在节点之间收发寻址消息
//
// 所有查找都是有界的：按固定周期探测，达到最大次数即结束，不会无限阻塞。
//
// # 快速开始
//
//	import "github.com/dep2p/go-lobby"
//
//	sess, err := lobby.New(lobby.WithPeerName("alice"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close(context.Background())
//
//	sess.AddListener(myListener)
//	if err := sess.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// 就绪后（OnConnectionReady 回调）
//	_ = sess.SearchPeers()
//	sess.SendMessage(peerID, "hello")
//
// # 组件结构
//
//	┌──────────────────────────────────────────────────────────┐
//	│  Session (本包)           lobby.New() / Start / Stop      │
//	├──────────────────────────────────────────────────────────┤
//	│  session.Coordinator      Idle → Connecting → Ready       │
//	│    ├── group.Resolver     查找或创建群组                   │
//	│    ├── peers.Directory    宣告本节点、扫描群组成员          │
//	│    └── channel.Channel    寻址消息收发                     │
//	├──────────────────────────────────────────────────────────┤
//	│  eventbus / dispatch / scheduler / metrics                │
//	├──────────────────────────────────────────────────────────┤
//	│  overlay: adhoc (UDP 组播) | memnet (进程内)               │
//	│           cache (内存 | BadgerDB)                         │
//	└──────────────────────────────────────────────────────────┘
//
// # 文件组织
//
//   - lobby.go: Session 门面
//   - options.go: 构造选项
//   - fx.go: Fx 模块装配
//   - convert.go: 统一配置到各组件配置的转换
//   - errors.go: 公共错误
package lobby
