package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	lobby "github.com/dep2p/go-lobby"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/types"
)

// console 交互终端
//
// 同时作为 SessionListener 打印会话事件。
type console struct {
	interfaces.NopSessionListener

	mu      sync.Mutex
	out     io.Writer
	session *lobby.Session
}

func newConsole(out io.Writer) *console {
	return &console{out: out}
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// ════════════════════════════════════════════════════════════════════════════
//                              会话事件
// ════════════════════════════════════════════════════════════════════════════

// OnConnectionReady 会话就绪
func (c *console) OnConnectionReady() {
	local := c.session.LocalPeer()
	group := c.session.Group()
	c.printf("✅ 已加入群组 %s (%s)，本节点 %s [%s]\n",
		group.Name, group.ID, local.DisplayName, local.ID.ShortString())
}

// OnPeerFound 花名册变化
func (c *console) OnPeerFound(roster types.Roster) {
	c.printf("👥 发现节点，当前 %d 个\n", len(roster))
}

// OnPeerSearchFinished 一轮扫描结束
func (c *console) OnPeerSearchFinished(roster types.Roster) {
	c.printf("🔍 节点搜索结束，共 %d 个\n", len(roster))
}

// OnMessageReceived 收到消息
func (c *console) OnMessageReceived(senderID types.PeerID, senderName, payload string) {
	c.printf("💬 %s [%s]: %s\n", senderName, senderID.ShortString(), payload)
}

// ════════════════════════════════════════════════════════════════════════════
//                              命令处理
// ════════════════════════════════════════════════════════════════════════════

// readCommands 逐行读取命令，直到 /quit 或输入结束
func (c *console) readCommands(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !c.handle(line) {
			return
		}
	}
}

// handle 执行一条命令，返回 false 表示退出
func (c *console) handle(line string) bool {
	if !strings.HasPrefix(line, "/") {
		c.printf("未知输入，/help 查看命令\n")
		return true
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/quit", "/exit", "/q":
		return false

	case "/peers", "/list":
		c.printPeers()

	case "/search":
		var err error
		if rest == "" {
			err = c.session.SearchPeers()
		} else {
			err = c.session.SearchPeersFiltered(rest)
		}
		c.reportSearch(err)

	case "/stop-search":
		c.session.StopSearch()
		c.printf("已停止搜索\n")

	case "/send":
		target, text, ok := strings.Cut(rest, " ")
		if !ok || target == "" {
			c.printf("用法: /send <节点ID> <消息>\n")
			return true
		}
		c.send(c.resolvePeer(target), text)

	case "/msg":
		name, text, ok := strings.Cut(rest, " ")
		if !ok || name == "" {
			c.printf("用法: /msg <名称> <消息>\n")
			return true
		}
		id, found := c.session.Peers().FindByName(name)
		if !found {
			c.printf("未找到名为 %q 的节点\n", name)
			return true
		}
		c.send(id, text)

	case "/state":
		c.printState()

	case "/flush":
		if err := c.session.Flush(); err != nil {
			c.printf("清除缓存失败: %v\n", err)
		} else {
			c.printf("已清除本地缓存\n")
		}

	case "/help", "/?":
		printHelp()

	default:
		c.printf("未知命令 %s，/help 查看命令\n", cmd)
	}
	return true
}

func (c *console) reportSearch(err error) {
	switch {
	case err == nil:
		c.printf("开始搜索节点...\n")
	case errors.Is(err, lobby.ErrInvalidFilter):
		c.printf("过滤词只能包含字母、数字和下划线\n")
	case errors.Is(err, lobby.ErrSearchInProgress):
		c.printf("搜索正在进行中\n")
	case errors.Is(err, lobby.ErrNotReady):
		c.printf("会话尚未就绪\n")
	default:
		c.printf("搜索失败: %v\n", err)
	}
}

func (c *console) send(id types.PeerID, text string) {
	if c.session.SendMessage(id, text) {
		c.printf("➡️  已发送给 %s\n", id.ShortString())
	} else {
		c.printf("发送失败\n")
	}
}

// resolvePeer 支持按完整 ID、短 ID 或 ID 前缀指定节点
func (c *console) resolvePeer(input string) types.PeerID {
	roster := c.session.Peers()
	if _, ok := roster[types.PeerID(input)]; ok {
		return types.PeerID(input)
	}
	for _, id := range roster.IDs() {
		if strings.HasPrefix(id.ShortString(), input) || strings.HasPrefix(string(id), input) {
			return id
		}
	}
	return types.PeerID(input)
}

func (c *console) printPeers() {
	roster := c.session.Peers()
	if len(roster) == 0 {
		c.printf("暂无节点\n")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "节点 (%d):\n", len(roster))
	for _, p := range roster.Records() {
		fmt.Fprintf(c.out, "  %-20s %s\n", p.DisplayName, p.ID)
	}
}

func (c *console) printState() {
	group := c.session.Group()
	c.printf("状态: %s / %s, 群组: %s (%s), 搜索中: %v\n",
		c.session.State(), c.session.Phase(), group.Name, group.ID, c.session.Searching())
}

func printCommandHints() {
	fmt.Println("输入 /help 查看可用命令")
}

func printHelp() {
	fmt.Println(`可用命令:
  /peers                 列出已发现节点
  /search [过滤词]       搜索节点（过滤词匹配显示名称）
  /stop-search           停止搜索
  /send <节点ID> <消息>  发送消息（ID 可用前缀）
  /msg <名称> <消息>     按显示名称发送消息
  /state                 显示会话状态
  /flush                 清除本地公告缓存
  /quit                  退出`)
}
