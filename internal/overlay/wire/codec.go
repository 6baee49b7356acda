package wire

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/proto"

	"github.com/dep2p/go-lobby/internal/overlay/wire/pb"
	"github.com/dep2p/go-lobby/pkg/types"
)

// ============================================================================
//                              编码
// ============================================================================

// Marshal 编码报文
func Marshal(env *Envelope) ([]byte, error) {
	data, err := proto.Marshal(envelopeToProto(env))
	if err != nil {
		return nil, fmt.Errorf("wire: marshal envelope: %w", err)
	}
	return data, nil
}

// MarshalAdvertisement 编码单条公告（也用于持久化缓存）
func MarshalAdvertisement(adv types.Advertisement) ([]byte, error) {
	data, err := proto.Marshal(advToProto(adv))
	if err != nil {
		return nil, fmt.Errorf("wire: marshal advertisement: %w", err)
	}
	return data, nil
}

func envelopeToProto(env *Envelope) *pb.Envelope {
	msg := &pb.Envelope{
		Id:       env.ID,
		Type:     pb.Envelope_Type(env.Type),
		From:     string(env.From),
		FromName: env.FromName,
		To:       string(env.To),
	}
	for _, adv := range env.Advs {
		msg.Advs = append(msg.Advs, advToProto(adv))
	}
	if q := env.Query; q != nil {
		msg.Query = &pb.Query{
			Kind:  uint32(q.Kind),
			Attr:  q.Attr,
			Value: q.Value,
		}
		if q.Max > 0 {
			msg.Query.Max = uint32(q.Max)
		}
	}
	if p := env.Pipe; p != nil {
		msg.Pipe = &pb.Pipe{
			ChannelId:  string(p.ChannelID),
			SenderId:   string(p.Message.SenderID),
			SenderName: p.Message.SenderName,
			ReceiverId: string(p.Message.ReceiverID),
			Payload:    p.Message.Payload,
		}
	}
	return msg
}

func advToProto(adv types.Advertisement) *pb.Advertisement {
	msg := &pb.Advertisement{
		Kind:        uint32(adv.Kind),
		Id:          adv.ID,
		Name:        adv.Name,
		Description: adv.Description,
		GroupId:     string(adv.GroupID),
		Publisher:   string(adv.Publisher),
	}
	if adv.Expiration > 0 {
		msg.ExpirationMs = uint64(adv.Expiration / time.Millisecond)
	}
	return msg
}

// ============================================================================
//                              解码
// ============================================================================

// Unmarshal 解码报文
//
// 线格式错误返回 ErrMalformed；类型未知返回 ErrUnknownType；
// 类型与负载不匹配（QUERY 缺少条件、PIPE 缺少消息）返回 ErrMalformed。
func Unmarshal(data []byte) (*Envelope, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrMalformed)
	}

	msg := &pb.Envelope{}
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	env := &Envelope{
		ID:       msg.GetId(),
		Type:     Type(msg.GetType()),
		From:     types.PeerID(msg.GetFrom()),
		FromName: msg.GetFromName(),
		To:       types.PeerID(msg.GetTo()),
	}
	for _, m := range msg.GetAdvs() {
		adv, err := advFromProto(m)
		if err != nil {
			return nil, err
		}
		env.Advs = append(env.Advs, adv)
	}

	switch env.Type {
	case TypePublish, TypeResponse:
	case TypeQuery:
		q := msg.GetQuery()
		if q == nil {
			return nil, fmt.Errorf("%w: query envelope without query", ErrMalformed)
		}
		env.Query = &Query{
			Kind:  types.AdvKind(q.GetKind()),
			Attr:  q.GetAttr(),
			Value: q.GetValue(),
			Max:   int(q.GetMax()),
		}
		if !env.Query.Kind.Valid() {
			return nil, fmt.Errorf("%w: query kind %d", ErrMalformed, env.Query.Kind)
		}
	case TypePipe:
		p := msg.GetPipe()
		if p == nil {
			return nil, fmt.Errorf("%w: pipe envelope without pipe", ErrMalformed)
		}
		if p.GetChannelId() == "" {
			return nil, fmt.Errorf("%w: pipe without channel", ErrMalformed)
		}
		env.Pipe = &Pipe{
			ChannelID: types.ChannelID(p.GetChannelId()),
			Message: types.ChannelMessage{
				SenderID:   types.PeerID(p.GetSenderId()),
				SenderName: p.GetSenderName(),
				ReceiverID: types.PeerID(p.GetReceiverId()),
				Payload:    p.GetPayload(),
			},
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, env.Type)
	}
	return env, nil
}

// UnmarshalAdvertisement 解码单条公告
func UnmarshalAdvertisement(data []byte) (types.Advertisement, error) {
	msg := &pb.Advertisement{}
	if err := proto.Unmarshal(data, msg); err != nil {
		return types.Advertisement{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return advFromProto(msg)
}

func advFromProto(msg *pb.Advertisement) (types.Advertisement, error) {
	adv := types.Advertisement{
		Kind:        types.AdvKind(msg.GetKind()),
		ID:          msg.GetId(),
		Name:        msg.GetName(),
		Description: msg.GetDescription(),
		GroupID:     types.GroupID(msg.GetGroupId()),
		Publisher:   types.PeerID(msg.GetPublisher()),
		Expiration:  time.Duration(msg.GetExpirationMs()) * time.Millisecond,
	}
	if !adv.Kind.Valid() {
		return types.Advertisement{}, fmt.Errorf("%w: advertisement kind %d", ErrMalformed, adv.Kind)
	}
	if adv.ID == "" {
		return types.Advertisement{}, fmt.Errorf("%w: advertisement without id", ErrMalformed)
	}
	return adv, nil
}
