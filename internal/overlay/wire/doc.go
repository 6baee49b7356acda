// Package wire 定义 adhoc 覆盖网络的报文格式
//
// 报文结构定义在 pb/envelope.proto，由 protoc-gen-go 生成 pb 包，
// 编解码使用 google.golang.org/protobuf/proto。本包在生成类型与领域类型
// （types.Advertisement、types.ChannelMessage 等）之间转换，并在解码后
// 做语义校验：报文类型已知、公告类型合法且带 ID、通道消息带通道 ID。
// 未知字段在解码时跳过，便于后续版本追加字段。
//
// 报文类型：
//   - PUBLISH  携带公告，接收方按 expiration 缓存
//   - QUERY    查询公告，接收方用本地缓存应答
//   - RESPONSE 查询应答，寻址给查询方
//   - PIPE     通道消息，投递给该通道上的所有入站端点
package wire
