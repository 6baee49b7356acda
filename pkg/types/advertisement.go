package types

import (
	"strings"
	"time"
)

// ============================================================================
//                              AdvKind - 公告类型
// ============================================================================

// AdvKind 目录公告类型
type AdvKind int

const (
	// AdvKindGroup 群组公告
	AdvKindGroup AdvKind = iota
	// AdvKindPeer 节点公告
	AdvKindPeer
	// AdvKindPipe 通道公告
	AdvKindPipe
)

// String 返回公告类型的字符串表示
func (k AdvKind) String() string {
	switch k {
	case AdvKindGroup:
		return "group"
	case AdvKindPeer:
		return "peer"
	case AdvKindPipe:
		return "pipe"
	default:
		return "unknown"
	}
}

// Valid 检查公告类型是否合法
func (k AdvKind) Valid() bool {
	return k >= AdvKindGroup && k <= AdvKindPipe
}

// 可查询的公告属性
const (
	// AttrName 按名称查询
	AttrName = "Name"
	// AttrID 按 ID 查询
	AttrID = "ID"
)

// ============================================================================
//                              Advertisement - 目录公告
// ============================================================================

// Advertisement 覆盖网络目录中的公告
type Advertisement struct {
	// Kind 公告类型
	Kind AdvKind

	// ID 公告对象 ID（群组 ID / 节点 ID / 通道 ID）
	ID string

	// Name 名称（群组名 / 节点显示名 / 通道名）
	Name string

	// Description 描述
	Description string

	// GroupID 所属群组（群组公告自身为空）
	GroupID GroupID

	// Publisher 发布者
	Publisher PeerID

	// Expiration 远端缓存保留时长
	Expiration time.Duration
}

// Key 返回目录内的去重键：同类型同 ID 的公告视为同一条
func (a Advertisement) Key() string {
	return a.Kind.String() + "/" + a.ID
}

// GroupRecord 将群组公告转换为群组记录
func (a Advertisement) GroupRecord() GroupRecord {
	return GroupRecord{ID: GroupID(a.ID), Name: a.Name, Description: a.Description}
}

// PeerRecord 将节点公告转换为节点记录
func (a Advertisement) PeerRecord() PeerRecord {
	return PeerRecord{ID: PeerID(a.ID), DisplayName: a.Name}
}

// GroupAdvertisement 构造群组公告
func GroupAdvertisement(g GroupRecord, publisher PeerID) Advertisement {
	return Advertisement{
		Kind:        AdvKindGroup,
		ID:          string(g.ID),
		Name:        g.Name,
		Description: g.Description,
		Publisher:   publisher,
	}
}

// PeerAdvertisement 构造节点公告
func PeerAdvertisement(p PeerRecord, group GroupID) Advertisement {
	return Advertisement{
		Kind:      AdvKindPeer,
		ID:        string(p.ID),
		Name:      p.DisplayName,
		GroupID:   group,
		Publisher: p.ID,
	}
}

// PipeAdvertisement 构造通道公告
func PipeAdvertisement(c ChannelSpec, group GroupID, publisher PeerID) Advertisement {
	return Advertisement{
		Kind:        AdvKindPipe,
		ID:          string(c.ID),
		Name:        c.Name,
		Description: string(c.Type),
		GroupID:     group,
		Publisher:   publisher,
	}
}

// ============================================================================
//                              属性匹配
// ============================================================================

// MatchAttribute 检查公告属性是否匹配查询值
//
// 匹配规则：
//   - value 为空或 "*" 匹配全部
//   - "*" 为通配符，匹配任意长度字符串
//   - 比较不区分大小写
//   - 未知属性不匹配
func MatchAttribute(adv Advertisement, attr, value string) bool {
	if value == "" || value == "*" {
		return true
	}
	var field string
	switch attr {
	case AttrName:
		field = adv.Name
	case AttrID:
		field = adv.ID
	default:
		return false
	}
	return wildcardMatch(strings.ToLower(value), strings.ToLower(field))
}

// wildcardMatch 支持 '*' 的通配匹配（贪婪回溯）
func wildcardMatch(pattern, s string) bool {
	p, i := 0, 0
	star, mark := -1, 0
	for i < len(s) {
		switch {
		case p < len(pattern) && pattern[p] != '*' && pattern[p] == s[i]:
			p++
			i++
		case p < len(pattern) && pattern[p] == '*':
			star = p
			mark = i
			p++
		case star >= 0:
			p = star + 1
			mark++
			i = mark
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
