package memnet

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dep2p/go-lobby/internal/overlay/cache"
	"github.com/dep2p/go-lobby/pkg/types"
)

// Network 进程内网络
type Network struct {
	mu    sync.RWMutex
	nodes map[types.PeerID]*Node
	wg    sync.WaitGroup
}

// NewNetwork 创建网络
func NewNetwork() *Network {
	return &Network{
		nodes: make(map[types.PeerID]*Node),
	}
}

// NewNode 在网络中创建节点
//
// id 为空时签发 urn:lobby:peer:<uuid>。
func (n *Network) NewNode(id types.PeerID, name string) *Node {
	if id == "" {
		id = types.PeerID("urn:lobby:peer:" + uuid.New().String())
	}
	node := &Node{
		net:     n,
		local:   types.PeerRecord{ID: id, DisplayName: name},
		store:   cache.NewMemoryStore(nil),
		inbound: make(map[types.ChannelID][]*inboundPipe),
	}

	n.mu.Lock()
	n.nodes[id] = node
	n.mu.Unlock()
	return node
}

// Nodes 返回所有节点（按 ID 排序）
func (n *Network) Nodes() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]*Node, 0, len(n.nodes))
	for _, node := range n.nodes {
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].local.ID < out[j].local.ID })
	return out
}

// Remove 将节点移出网络
func (n *Network) Remove(id types.PeerID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.nodes, id)
}

// peers 返回除 self 外已启动的节点
func (n *Network) peers(self types.PeerID) []*Node {
	out := make([]*Node, 0)
	for _, node := range n.Nodes() {
		if node.local.ID != self && node.Started() {
			out = append(out, node)
		}
	}
	return out
}

// async 异步执行网络投递
func (n *Network) async(fn func()) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		fn()
	}()
}

// Wait 等待所有在途投递完成（测试用）
func (n *Network) Wait() {
	n.wg.Wait()
}
