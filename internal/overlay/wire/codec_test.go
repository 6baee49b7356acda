package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"

	"github.com/dep2p/go-lobby/internal/overlay/wire/pb"
	"github.com/dep2p/go-lobby/pkg/types"
)

func mustMarshal(t *testing.T, env *Envelope) []byte {
	t.Helper()
	data, err := Marshal(env)
	require.NoError(t, err)
	return data
}

// ============================================================================
// 编解码测试
// ============================================================================

// TestEnvelope_Publish 测试 PUBLISH 报文
func TestEnvelope_Publish(t *testing.T) {
	env := &Envelope{
		ID:       "e1",
		Type:     TypePublish,
		From:     "urn:lobby:peer:a",
		FromName: "alice",
		Advs: []types.Advertisement{
			{Kind: types.AdvKindGroup, ID: "urn:g", Name: "CheckersGroup", Description: "desc", Publisher: "urn:lobby:peer:a", Expiration: 2 * time.Hour},
			{Kind: types.AdvKindPeer, ID: "urn:lobby:peer:a", Name: "alice", GroupID: "urn:g", Publisher: "urn:lobby:peer:a", Expiration: 2 * time.Minute},
		},
	}

	got, err := Unmarshal(mustMarshal(t, env))
	require.NoError(t, err)
	assert.Equal(t, env, got)
}

// TestEnvelope_QueryAndResponse 测试 QUERY / RESPONSE 报文
func TestEnvelope_QueryAndResponse(t *testing.T) {
	query := &Envelope{
		ID:    "q1",
		Type:  TypeQuery,
		From:  "urn:a",
		Query: &Query{Kind: types.AdvKindPeer, Attr: types.AttrName, Value: "*ali*", Max: 10},
	}
	got, err := Unmarshal(mustMarshal(t, query))
	require.NoError(t, err)
	assert.Equal(t, query, got)

	// 群组类型（零值）且无属性的查询
	bare := &Envelope{ID: "q2", Type: TypeQuery, From: "urn:a", Query: &Query{}}
	got, err = Unmarshal(mustMarshal(t, bare))
	require.NoError(t, err)
	assert.Equal(t, types.AdvKindGroup, got.Query.Kind)

	resp := &Envelope{ID: "r1", Type: TypeResponse, From: "urn:b", To: "urn:a"}
	got, err = Unmarshal(mustMarshal(t, resp))
	require.NoError(t, err)
	assert.Equal(t, types.PeerID("urn:a"), got.To)
	assert.Empty(t, got.Advs)
}

// TestEnvelope_Pipe 测试 PIPE 报文
func TestEnvelope_Pipe(t *testing.T) {
	env := &Envelope{
		ID:   "p1",
		Type: TypePipe,
		From: "urn:a",
		Pipe: &Pipe{
			ChannelID: "urn:pipe",
			Message:   types.ChannelMessage{SenderID: "urn:a", SenderName: "alice", ReceiverID: "urn:b", Payload: "hello"},
		},
	}
	got, err := Unmarshal(mustMarshal(t, env))
	require.NoError(t, err)
	assert.Equal(t, env, got)
}

// TestUnmarshal_SkipsUnknownFields 测试跳过未知字段
func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	b := mustMarshal(t, &Envelope{ID: "e", Type: TypeResponse, From: "urn:a"})
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "future")
	b = protowire.AppendTag(b, 100, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)

	got, err := Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, "e", got.ID)
}

// ============================================================================
// 异常输入测试
// ============================================================================

// TestUnmarshal_Malformed 测试异常报文
func TestUnmarshal_Malformed(t *testing.T) {
	valid := mustMarshal(t, &Envelope{ID: "e1", Type: TypePublish, From: "urn:a", FromName: "alice"})

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"空数据", nil, ErrMalformed},
		{"截断", valid[:len(valid)-2], ErrMalformed},
		{"非法标签", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, ErrMalformed},
		{"缺少类型", mustMarshal(t, &Envelope{ID: "e"}), ErrUnknownType},
		{"未知类型", mustMarshal(t, &Envelope{ID: "e", Type: 42}), ErrUnknownType},
		{"查询缺少条件", mustMarshal(t, &Envelope{ID: "e", Type: TypeQuery}), ErrMalformed},
		{"通道缺少消息", mustMarshal(t, &Envelope{ID: "e", Type: TypePipe}), ErrMalformed},
		{"公告缺少 ID", mustMarshal(t, &Envelope{ID: "e", Type: TypePublish, Advs: []types.Advertisement{{Kind: types.AdvKindPeer}}}), ErrMalformed},
		{"公告类型非法", mustMarshal(t, &Envelope{ID: "e", Type: TypePublish, Advs: []types.Advertisement{{Kind: 7, ID: "x"}}}), ErrMalformed},
		{"通道缺少 ID", mustMarshal(t, &Envelope{ID: "e", Type: TypePipe, Pipe: &Pipe{}}), ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// TestAdvertisement_RoundTrip 测试单条公告编解码
func TestAdvertisement_RoundTrip(t *testing.T) {
	adv := types.Advertisement{Kind: types.AdvKindPipe, ID: "urn:pipe", Name: "CheckerPipe", Description: "propagate", GroupID: "urn:g"}
	data, err := MarshalAdvertisement(adv)
	require.NoError(t, err)
	got, err := UnmarshalAdvertisement(data)
	require.NoError(t, err)
	assert.Equal(t, adv, got)

	_, err = UnmarshalAdvertisement([]byte{0x12, 0x05, 'x'})
	assert.ErrorIs(t, err, ErrMalformed)
}

// TestMarshal_InvalidUTF8 测试非法 UTF-8 字符串
func TestMarshal_InvalidUTF8(t *testing.T) {
	_, err := Marshal(&Envelope{
		ID:   "p1",
		Type: TypePipe,
		Pipe: &Pipe{ChannelID: "urn:pipe", Message: types.ChannelMessage{Payload: "\xff\xfe"}},
	})
	assert.Error(t, err)

	_, err = MarshalAdvertisement(types.Advertisement{Kind: types.AdvKindPeer, ID: "urn:a", Name: "\xc3"})
	assert.Error(t, err)
}

// TestUnmarshal_GeneratedMessage 测试直接由生成类型编码的报文
func TestUnmarshal_GeneratedMessage(t *testing.T) {
	data, err := proto.Marshal(&pb.Envelope{
		Id:   "r1",
		Type: pb.Envelope_RESPONSE,
		From: "urn:b",
		To:   "urn:a",
		Advs: []*pb.Advertisement{
			{Kind: uint32(types.AdvKindPeer), Id: "urn:b", Name: "bob", GroupId: "urn:g", ExpirationMs: 1500},
		},
	})
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, TypeResponse, got.Type)
	assert.Equal(t, types.PeerID("urn:a"), got.To)
	require.Len(t, got.Advs, 1)
	assert.Equal(t, "bob", got.Advs[0].Name)
	assert.Equal(t, types.GroupID("urn:g"), got.Advs[0].GroupID)
	assert.Equal(t, 1500*time.Millisecond, got.Advs[0].Expiration)

	desc := pb.File_pb_envelope_proto.Messages().ByName("Envelope")
	require.NotNil(t, desc)
	assert.Equal(t, 8, desc.Fields().Len())
	assert.Equal(t, "lobby.wire.Envelope.Type", string(desc.Enums().ByName("Type").FullName()))
}

// TestType_String 测试报文类型名称
func TestType_String(t *testing.T) {
	assert.Equal(t, "PIPE", TypePipe.String())
	assert.Equal(t, "UNKNOWN", Type(9).String())
}
