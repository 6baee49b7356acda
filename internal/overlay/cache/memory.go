package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-lobby/pkg/types"
)

// MemoryStore 内存公告缓存
type MemoryStore struct {
	clock clock.Clock

	mu      sync.Mutex
	closed  bool
	entries map[string]memEntry
	meta    map[string]string
}

type memEntry struct {
	adv     types.Advertisement
	expires time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore 创建内存缓存，clk 为 nil 时使用真实时钟
func NewMemoryStore(clk clock.Clock) *MemoryStore {
	if clk == nil {
		clk = clock.New()
	}
	return &MemoryStore{
		clock:   clk,
		entries: make(map[string]memEntry),
		meta:    make(map[string]string),
	}
}

// Put 实现 Store
func (s *MemoryStore) Put(adv types.Advertisement, ttl time.Duration) error {
	if err := validate(adv); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	e := memEntry{adv: adv}
	if ttl > 0 {
		e.expires = s.clock.Now().Add(ttl)
	}
	s.entries[adv.Key()] = e
	return nil
}

// Query 实现 Store
func (s *MemoryStore) Query(kind types.AdvKind, attr, value string, max int) ([]types.Advertisement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	now := s.clock.Now()
	var out []types.Advertisement
	for key, e := range s.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(s.entries, key)
			continue
		}
		if e.adv.Kind != kind || !types.MatchAttribute(e.adv, attr, value) {
			continue
		}
		out = append(out, e.adv)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out, nil
}

// Flush 实现 Store
func (s *MemoryStore) Flush(kind types.AdvKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for key, e := range s.entries {
		if e.adv.Kind == kind {
			delete(s.entries, key)
		}
	}
	return nil
}

// Meta 实现 Store
func (s *MemoryStore) Meta(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.meta[key]
	return v, ok, nil
}

// SetMeta 实现 Store
func (s *MemoryStore) SetMeta(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.meta[key] = value
	return nil
}

// Len 返回条目数（含未清理的过期条目）
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close 实现 Store
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.entries = make(map[string]memEntry)
	return nil
}
