package interfaces

import (
	"context"
	"time"

	"github.com/dep2p/go-lobby/pkg/types"
)

// ============================================================================
//                              Directory - 公告目录
// ============================================================================

// Directory 覆盖网络公告目录
//
// 提供公告发布与查询。远程查询是异步的：QueryRemote 只负责发出请求，
// 结果通过 DiscoveryListener 回调送达。
type Directory interface {
	// Start 加入覆盖网络
	//
	// 启动失败对会话是致命的。
	Start(ctx context.Context) error

	// Stop 离开覆盖网络
	Stop(ctx context.Context) error

	// LocalPeer 返回本节点身份（由覆盖网络签发）
	LocalPeer() types.PeerRecord

	// PublishLocal 将公告写入本地缓存
	//
	// lifetime 为本地保留时长，expiration 为转发给他人时的保留时长。
	PublishLocal(adv types.Advertisement, lifetime, expiration time.Duration) error

	// PublishRemote 将公告推送到网络
	PublishRemote(adv types.Advertisement, expiration time.Duration) error

	// QueryLocal 查询本地缓存
	QueryLocal(kind types.AdvKind, attr, value string) ([]types.Advertisement, error)

	// QueryRemote 向网络发出查询（异步）
	//
	// maxResults 为每个应答方最多返回的公告数，<= 0 表示不限。
	QueryRemote(kind types.AdvKind, attr, value string, maxResults int) error

	// FlushLocal 清除指定类型的本地缓存公告
	FlushLocal(kind types.AdvKind) error

	// AddDiscoveryListener 注册发现回调（重复注册无效果）
	AddDiscoveryListener(l DiscoveryListener)

	// RemoveDiscoveryListener 注销发现回调
	RemoveDiscoveryListener(l DiscoveryListener)
}

// DiscoveryResponse 一次远程查询应答
type DiscoveryResponse struct {
	// From 应答方
	From types.PeerID

	// Kind 公告类型
	Kind types.AdvKind

	// Advertisements 应答携带的公告
	Advertisements []types.Advertisement
}

// DiscoveryListener 远程查询结果回调
//
// 实现必须可比较（通常是指针），以便注销。
type DiscoveryListener interface {
	DiscoveryEvent(resp DiscoveryResponse)
}
