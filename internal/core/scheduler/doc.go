// Package scheduler 实现有界重试调度器
//
// 调度器按固定周期执行探测任务，在尝试次数用尽或任务报告完成时自行终止，
// 终止时恰好回调一次 OnExhausted。所有搜索过程（群组查找、节点扫描）
// 都由它限定时间上界，不会无限期阻塞。
//
// 时序：
//
//	Start ──FirstDelay──> tick#1 ──Period──> tick#2 ... tick#N+1 (counter > N)
//	                        Probe              Probe      OnExhausted
//
// 每个 tick 先递增计数器，再判断是否终止，否则执行 Probe。
// 同一调度器只有一个 goroutine，tick 不会重叠。
//
// 停止有两种方式：Stop 等待进行中的 tick 结束，返回后不再有回调；
// Cancel 只取消后续 tick，供 Probe 内部使用。
//
// 时间源通过 benbjohnson/clock 注入，测试中使用 clock.NewMock()。
package scheduler
