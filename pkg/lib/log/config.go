package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// 环境变量
//   - LOBBY_LOG_LEVEL: 日志级别，支持按子系统配置
//     格式: 子系统=级别,子系统=级别,默认级别
//     示例: group=debug,overlay=warn,info
//   - LOBBY_LOG_FORMAT: 日志格式 (text 或 json)
const (
	EnvLogLevel  = "LOBBY_LOG_LEVEL"
	EnvLogFormat = "LOBBY_LOG_FORMAT"
)

// Format 日志输出格式
type Format int

const (
	// FormatText 文本格式（默认）
	FormatText Format = iota
	// FormatJSON JSON 格式
	FormatJSON
)

// Config 日志配置
type Config struct {
	// DefaultLevel 默认日志级别
	DefaultLevel slog.Level

	// SubsystemLevels 各子系统的日志级别
	SubsystemLevels map[string]slog.Level

	// Format 输出格式
	Format Format
}

// LevelForSubsystem 获取指定子系统的日志级别
//
// 组件名形如 "overlay/adhoc" 时，先精确匹配，再按首段 "overlay" 匹配。
func (c *Config) LevelForSubsystem(component string) slog.Level {
	if level, ok := c.SubsystemLevels[component]; ok {
		return level
	}
	if i := strings.IndexByte(component, '/'); i > 0 {
		if level, ok := c.SubsystemLevels[component[:i]]; ok {
			return level
		}
	}
	return c.DefaultLevel
}

// minLevel 返回所有配置中的最低级别，作为底层 handler 的门限
func (c *Config) minLevel() slog.Level {
	lowest := c.DefaultLevel
	for _, level := range c.SubsystemLevels {
		if level < lowest {
			lowest = level
		}
	}
	return lowest
}

var active atomic.Pointer[Config]

func currentConfig() *Config {
	return active.Load()
}

// ParseConfig 解析级别与格式字符串
//
// level 格式: subsystem=level,subsystem=level,defaultLevel
func ParseConfig(level, format string) *Config {
	cfg := &Config{
		DefaultLevel:    slog.LevelInfo,
		SubsystemLevels: make(map[string]slog.Level),
		Format:          FormatText,
	}

	for _, part := range strings.Split(level, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if k, v, ok := strings.Cut(part, "="); ok {
			if lvl, ok := ParseLevel(strings.TrimSpace(v)); ok {
				cfg.SubsystemLevels[strings.TrimSpace(k)] = lvl
			}
			continue
		}
		if lvl, ok := ParseLevel(part); ok {
			cfg.DefaultLevel = lvl
		}
	}

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		cfg.Format = FormatJSON
	}
	return cfg
}

// ParseLevel 解析日志级别名称
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Setup 按配置安装默认 logger
func Setup(w io.Writer, cfg *Config) {
	if cfg == nil {
		cfg = ParseConfig("", "")
	}
	opts := &slog.HandlerOptions{
		Level: cfg.minLevel(),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			// 简化时间键名
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	active.Store(cfg)
	slog.SetDefault(slog.New(handler))
}

// SetupFromEnv 从环境变量读取配置并安装默认 logger
//
// 环境变量为空时使用 fallbackLevel / fallbackFormat。
func SetupFromEnv(w io.Writer, fallbackLevel, fallbackFormat string) *Config {
	level := os.Getenv(EnvLogLevel)
	if level == "" {
		level = fallbackLevel
	}
	format := os.Getenv(EnvLogFormat)
	if format == "" {
		format = fallbackFormat
	}
	cfg := ParseConfig(level, format)
	Setup(w, cfg)
	return cfg
}
