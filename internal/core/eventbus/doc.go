// Package eventbus 实现进程内事件总线
//
// 事件按来源（source）组织，每个来源维护一个有序的监听者列表：
//   - 订阅/取消订阅幂等且并发安全
//   - 发布时在锁内取监听者快照，锁外按注册的逆序分发（最近注册的先收到）
//   - 分发过程中增删监听者不影响本次分发
//   - 单个监听者 panic 会被恢复并记录日志，其余监听者照常执行
//
// # 快速开始
//
//	bus := eventbus.NewBus()
//
//	l := eventbus.ListenerFunc(func(evt types.Event) {
//	    // 处理事件
//	})
//	bus.Subscribe("peers", l)
//	defer bus.Unsubscribe("peers", l)
//
//	bus.Publish("peers", types.NewEvtPeerFound(roster))
//
// # Fx 模块
//
//	app := fx.New(
//	    eventbus.Module(),
//	    fx.Invoke(func(bus *eventbus.Bus) { ... }),
//	)
//
// # 并发安全
//
// 来源表由 sync.RWMutex 保护，每个来源的监听者列表由独立的 sync.Mutex 保护。
// Publish 同步执行监听者，需要异步分发时由调用方提交到 dispatch 工作池。
package eventbus
