// Package channel 实现群组内的寻址消息通道
//
// 通道建立在传播型广播原语之上：发送的消息送达通道上的所有节点，
// 每个节点只接受 ReceiverID 为自己且 SenderID 不是自己的消息。
// 接受的消息以 EvtMessageReceived 发布，其余消息静默丢弃并计入指标。
//
// 事件以 "channel" 为来源发布到事件总线。
package channel
