// Package log 提供 go-lobby 统一日志接口
//
// 基于 log/slog。各组件在包级声明 logger：
//
//	var logger = log.Logger("peers")
//
// 每条日志带 component 属性，并按子系统级别过滤（见 config.go），
// 因此 Setup 可以在组件创建之后的任意时刻调用。
package log

import (
	"context"
	"log/slog"
	"os"
)

// componentKey 组件属性名
const componentKey = "component"

// LazyLogger 组件 logger
//
// 不持有 handler，每次输出时读取 slog.Default()，
// 运行时切换输出目标或级别对已声明的 logger 立即生效。
type LazyLogger struct {
	component string
}

// Logger 返回组件 logger
//
// 组件名用 "/" 分层（如 "overlay/adhoc"），级别配置可只写首段。
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

// Component 返回组件名
func (l *LazyLogger) Component() string {
	return l.component
}

// Enabled 报告该级别的日志是否会输出
func (l *LazyLogger) Enabled(level slog.Level) bool {
	if cfg := currentConfig(); cfg != nil {
		return level >= cfg.LevelForSubsystem(l.component)
	}
	return slog.Default().Enabled(context.Background(), level)
}

func (l *LazyLogger) Debug(msg string, args ...any) {
	l.emit(context.Background(), slog.LevelDebug, msg, args)
}

func (l *LazyLogger) Info(msg string, args ...any) {
	l.emit(context.Background(), slog.LevelInfo, msg, args)
}

func (l *LazyLogger) Warn(msg string, args ...any) {
	l.emit(context.Background(), slog.LevelWarn, msg, args)
}

func (l *LazyLogger) Error(msg string, args ...any) {
	l.emit(context.Background(), slog.LevelError, msg, args)
}

// With 返回绑定了组件名和额外属性的 slog.Logger
//
// 返回值固定了当时的默认 handler，不再感知之后的 Setup。
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return slog.Default().With(append([]any{componentKey, l.component}, args...)...)
}

func (l *LazyLogger) emit(ctx context.Context, level slog.Level, msg string, args []any) {
	if !l.Enabled(level) {
		return
	}
	slog.Default().Log(ctx, level, msg, append([]any{componentKey, l.component}, args...)...)
}

// TruncateID 截取 ID 前 maxLen 个字节用于日志
func TruncateID(id string, maxLen int) string {
	if maxLen < 0 || len(id) <= maxLen {
		return id
	}
	return id[:maxLen]
}

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}
