package config

import (
	"fmt"
	"strings"
)

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enable 是否采集指标
	Enable bool `json:"enable"`

	// ListenAddr /metrics HTTP 监听地址，为空时不对外暴露
	ListenAddr string `json:"listen_addr,omitempty"`
}

// DefaultMetricsConfig 返回默认的指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{Enable: true}
}

// Validate 验证指标配置
func (c *MetricsConfig) Validate() error {
	if c.ListenAddr != "" && !c.Enable {
		return fmt.Errorf("metrics: listen_addr set but metrics disabled")
	}
	return nil
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，支持按子系统配置
	// 格式: "group=debug,overlay=warn,info"
	// 默认值: "info"
	Level string `json:"level"`

	// Format 输出格式: text | json
	// 默认值: "text"
	Format string `json:"format"`

	// File 日志文件，为空时输出到 stderr
	File string `json:"file,omitempty"`
}

// DefaultLogConfig 返回默认的日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate 验证日志配置
func (c *LogConfig) Validate() error {
	switch strings.ToLower(c.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Format)
	}
	return nil
}
