// Package main 提供 lobby 命令行入口
//
// 启动一个大厅会话：加入（或创建）默认群组，发现同组节点，
// 并通过标准输入交互式收发消息。
//
// 使用示例：
//
//	lobby -name alice
//	lobby -name bob -cache-dir ~/.lobby -metrics-addr 127.0.0.1:9090
//	lobby -config lobby.json -log-level "group=debug,info"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	lobby "github.com/dep2p/go-lobby"
	"github.com/dep2p/go-lobby/config"
	"github.com/dep2p/go-lobby/pkg/lib/log"
)

var logger = log.Logger("lobby/cmd")

// ════════════════════════════════════════════════════════════════════════════
//                              命令行参数
// ════════════════════════════════════════════════════════════════════════════

var (
	// ─── 配置文件 ───
	configFile = flag.String("config", "", "JSON 配置文件路径")

	// ─── 身份与群组 ───
	peerName  = flag.String("name", "", "节点显示名称（默认为主机名）")
	groupName = flag.String("group", "", "要加入的群组名称")

	// ─── 覆盖网络与存储 ───
	cacheDir  = flag.String("cache-dir", "", "公告缓存目录（为空时仅使用内存）")
	storage   = flag.String("storage", "", "缓存后端: memory | badger")
	multicast = flag.String("multicast", "", "组播地址，如 239.255.42.99:9789")

	// ─── 会话行为 ───
	queueSearch = flag.Bool("queue-search", false, "会话未就绪时排队节点搜索，就绪后执行")

	// ─── 日志与监控 ───
	logLevel    = flag.String("log-level", "", "日志级别，如 info 或 group=debug,peers=warn,info")
	metricsAddr = flag.String("metrics-addr", "", "Prometheus /metrics 监听地址")

	// ─── 其他 ───
	showVersion = flag.Bool("version", false, "显示版本信息")
)

// shutdownTimeout 关闭会话的最长等待时间
const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println(lobby.VersionInfo())
		return nil
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("启动 lobby", "version", lobby.Version, "commit", lobby.GitCommit, "name", cfg.Identity.PeerName)

	ui := newConsole(os.Stdout)
	sess, err := lobby.New(lobby.WithConfig(cfg), lobby.WithListener(ui))
	if err != nil {
		return fmt.Errorf("创建会话失败: %w", err)
	}
	ui.session = sess

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("📦 %s\n", lobby.VersionInfo())
	fmt.Println("正在加入群组...")
	if err := sess.Start(ctx); err != nil {
		closeSession(sess)
		return fmt.Errorf("启动失败: %w", err)
	}
	defer closeSession(sess)

	if cfg.Metrics.ListenAddr != "" {
		srv := serveMetrics(cfg.Metrics.ListenAddr, sess)
		defer func() { _ = srv.Close() }()
	}

	printCommandHints()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ui.readCommands(os.Stdin)
	}()

	select {
	case <-ctx.Done():
		fmt.Println("\n收到退出信号")
	case <-done:
	}

	fmt.Println("正在关闭会话...")
	return nil
}

// buildConfig 构建配置
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（LOBBY_* 前缀）
//  3. 配置文件
//  4. 默认值
func buildConfig() (*config.Config, error) {
	var cfg *config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.LoadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
	} else {
		cfg = config.NewConfig()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("应用环境变量失败: %w", err)
	}

	if isFlagSet("name") {
		cfg.Identity.PeerName = *peerName
	}
	if isFlagSet("group") {
		cfg.Group.Name = *groupName
	}
	if isFlagSet("cache-dir") {
		cfg.Storage.Dir = *cacheDir
	}
	if isFlagSet("storage") {
		cfg.Storage.Backend = *storage
	}
	if isFlagSet("multicast") {
		cfg.Overlay.MulticastAddr = *multicast
	}
	if isFlagSet("queue-search") {
		cfg.Session.QueueSearchUntilReady = *queueSearch
	}
	if isFlagSet("log-level") {
		cfg.Log.Level = *logLevel
	}
	if isFlagSet("metrics-addr") {
		cfg.Metrics.ListenAddr = *metricsAddr
		if *metricsAddr != "" {
			cfg.Metrics.Enable = true
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	return cfg, nil
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// setupLogging 安装全局日志
//
// 未指定日志文件时输出到 stderr，避免与交互输出混在一起。
func setupLogging(lc config.LogConfig) (func(), error) {
	var (
		w       io.Writer = os.Stderr
		cleanup           = func() {}
	)
	if lc.File != "" {
		file, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		w = file
		cleanup = func() { _ = file.Close() }
	}
	log.Setup(w, log.ParseConfig(lc.Level, lc.Format))
	return cleanup, nil
}

// serveMetrics 启动 Prometheus 指标端点
func serveMetrics(addr string, sess *lobby.Session) *http.Server {
	mux := http.NewServeMux()
	if g := sess.Gatherer(); g != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("指标端点退出", "addr", addr, "err", err)
		}
	}()
	logger.Info("指标端点已启动", "addr", addr)
	return srv
}

func closeSession(sess *lobby.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sess.Close(ctx); err != nil {
		logger.Warn("关闭会话失败", "err", err)
	}
}
