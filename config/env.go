package config

import (
	"fmt"
	"os"
	"strconv"
)

// 环境变量
//
// 环境变量覆盖文件中的配置，命令行参数再覆盖环境变量。
const (
	EnvPeerName    = "LOBBY_PEER_NAME"
	EnvGroupName   = "LOBBY_GROUP_NAME"
	EnvStorage     = "LOBBY_STORAGE"
	EnvCacheDir    = "LOBBY_CACHE_DIR"
	EnvMulticast   = "LOBBY_MULTICAST"
	EnvInterface   = "LOBBY_INTERFACE"
	EnvLogLevel    = "LOBBY_LOG_LEVEL"
	EnvLogFormat   = "LOBBY_LOG_FORMAT"
	EnvMetricsAddr = "LOBBY_METRICS_ADDR"
	EnvQueueSearch = "LOBBY_QUEUE_SEARCH"
)

// ApplyEnv 应用环境变量覆盖并重新校验
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvPeerName, &c.Identity.PeerName},
		{EnvGroupName, &c.Group.Name},
		{EnvStorage, &c.Storage.Backend},
		{EnvCacheDir, &c.Storage.Dir},
		{EnvMulticast, &c.Overlay.MulticastAddr},
		{EnvInterface, &c.Overlay.Interface},
		{EnvLogLevel, &c.Log.Level},
		{EnvLogFormat, &c.Log.Format},
		{EnvMetricsAddr, &c.Metrics.ListenAddr},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	if v, ok := lookup(EnvQueueSearch); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvQueueSearch, err)
		}
		c.Session.QueueSearchUntilReady = b
	}
	if c.Metrics.ListenAddr != "" {
		c.Metrics.Enable = true
	}

	return c.Validate()
}
