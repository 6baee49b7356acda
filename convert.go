package lobby

import (
	"github.com/dep2p/go-lobby/config"
	"github.com/dep2p/go-lobby/internal/core/dispatch"
	"github.com/dep2p/go-lobby/internal/core/scheduler"
	"github.com/dep2p/go-lobby/internal/group"
	"github.com/dep2p/go-lobby/internal/overlay/adhoc"
	"github.com/dep2p/go-lobby/internal/overlay/cache"
	"github.com/dep2p/go-lobby/internal/peers"
	"github.com/dep2p/go-lobby/internal/session"
	"github.com/dep2p/go-lobby/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              配置转换
// ════════════════════════════════════════════════════════════════════════════

func schedulerConfig(c config.SearchConfig) scheduler.Config {
	return scheduler.Config{
		Period:      c.Period.Std(),
		FirstDelay:  c.FirstDelay.Std(),
		MaxAttempts: c.MaxAttempts,
	}
}

// sessionConfig 统一配置 → 协调器配置
func sessionConfig(c *config.Config) session.Config {
	return session.Config{
		Group: types.GroupRecord{
			ID:          types.GroupID(c.Group.ID),
			Name:        c.Group.Name,
			Description: c.Group.Description,
		},
		Channel: types.ChannelSpec{
			ID:   types.ChannelID(c.Channel.ID),
			Name: c.Channel.Name,
			Type: types.ChannelTypePropagate,
		},
		Resolver: group.Config{
			Search:     schedulerConfig(c.Search),
			MaxGroups:  c.Search.MaxGroups,
			Lifetime:   c.Group.Lifetime.Std(),
			Expiration: c.Group.Expiration.Std(),
		},
		Peers: peers.Config{
			Sweep:      schedulerConfig(c.Search),
			MaxPeers:   c.Search.MaxPeers,
			Lifetime:   c.Announce.Lifetime.Std(),
			Expiration: c.Announce.Expiration.Std(),
		},
		QueueSearchUntilReady: c.Session.QueueSearchUntilReady,
	}
}

// adhocConfig 统一配置 → 组播覆盖网络配置
func adhocConfig(c *config.Config) adhoc.Config {
	return adhoc.Config{
		PeerName:   c.Identity.PeerName,
		Group:      c.Overlay.MulticastAddr,
		Interface:  c.Overlay.Interface,
		TTL:        c.Overlay.TTL,
		QueryRate:  c.Overlay.QueryRate,
		QueryBurst: c.Overlay.QueryBurst,
		DedupSize:  c.Overlay.DedupSize,
	}
}

// cacheConfig 统一配置 → 公告缓存配置
func cacheConfig(c *config.Config) cache.Config {
	return cache.Config{
		Backend:    c.Storage.Backend,
		Dir:        c.Storage.DBPath(),
		GCInterval: c.Storage.GCInterval.Std(),
	}
}

// dispatchConfig 统一配置 → 分发工作池配置
func dispatchConfig(c *config.Config) dispatch.Config {
	return dispatch.Config{
		Workers:   c.Dispatch.Workers,
		QueueSize: c.Dispatch.QueueSize,
	}
}
