package wire

import (
	"github.com/dep2p/go-lobby/pkg/types"
)

// Type 报文类型
type Type uint32

const (
	TypeUnknown  Type = 0
	TypePublish  Type = 1
	TypeQuery    Type = 2
	TypeResponse Type = 3
	TypePipe     Type = 4
)

// String 返回报文类型名称
func (t Type) String() string {
	switch t {
	case TypePublish:
		return "PUBLISH"
	case TypeQuery:
		return "QUERY"
	case TypeResponse:
		return "RESPONSE"
	case TypePipe:
		return "PIPE"
	default:
		return "UNKNOWN"
	}
}

// Envelope 覆盖网络报文
type Envelope struct {
	// ID 报文 ID，用于去重
	ID string

	Type Type

	// From 发送方节点
	From types.PeerID

	// FromName 发送方显示名称
	FromName string

	// To 接收方（RESPONSE 使用，空表示广播）
	To types.PeerID

	// Advs PUBLISH / RESPONSE 携带的公告
	Advs []types.Advertisement

	// Query QUERY 的查询条件
	Query *Query

	// Pipe PIPE 的通道消息
	Pipe *Pipe
}

// Query 查询条件
type Query struct {
	Kind  types.AdvKind
	Attr  string
	Value string
	// Max 应答方最多返回的公告数，0 表示不限
	Max int
}

// Pipe 通道消息
type Pipe struct {
	ChannelID types.ChannelID
	Message   types.ChannelMessage
}
