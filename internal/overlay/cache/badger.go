package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/dep2p/go-lobby/internal/overlay/wire"
	"github.com/dep2p/go-lobby/pkg/lib/log"
	"github.com/dep2p/go-lobby/pkg/types"
)

var logger = log.Logger("overlay/cache")

// 键前缀
const (
	prefixAdv  = "adv/"
	prefixMeta = "meta/"
)

// BadgerConfig BadgerStore 配置
type BadgerConfig struct {
	// Dir 数据目录，InMemory 为 true 时忽略
	Dir string

	// InMemory 纯内存模式
	InMemory bool

	// GCInterval 值日志 GC 周期，0 表示不做 GC
	GCInterval time.Duration
}

// BadgerStore 基于 BadgerDB 的公告缓存
type BadgerStore struct {
	db     *badger.DB
	closed atomic.Bool

	gcCancel context.CancelFunc
	gcWg     sync.WaitGroup
}

var _ Store = (*BadgerStore)(nil)

// OpenBadger 打开 BadgerStore
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Dir == "" {
			return nil, fmt.Errorf("cache: badger dir required")
		}
		if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
			return nil, fmt.Errorf("cache: create dir: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts = opts.WithLogger(&badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cache: open badger: %w", err)
	}

	s := &BadgerStore{db: db}
	if !cfg.InMemory && cfg.GCInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		s.gcCancel = cancel
		s.gcWg.Add(1)
		go s.gcLoop(ctx, cfg.GCInterval)
	}
	return s, nil
}

// advPrefix 返回某类型公告的键前缀
func advPrefix(kind types.AdvKind) []byte {
	return []byte(prefixAdv + kind.String() + "/")
}

// Put 实现 Store
func (s *BadgerStore) Put(adv types.Advertisement, ttl time.Duration) error {
	if err := validate(adv); err != nil {
		return err
	}
	if s.closed.Load() {
		return ErrClosed
	}

	key := []byte(prefixAdv + adv.Key())
	val, err := wire.MarshalAdvertisement(adv)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key, val)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Query 实现 Store
func (s *BadgerStore) Query(kind types.AdvKind, attr, value string, max int) ([]types.Advertisement, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	prefix := advPrefix(kind)
	var out []types.Advertisement
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			adv, err := wire.UnmarshalAdvertisement(val)
			if err != nil {
				logger.Warn("跳过损坏的缓存条目", "key", string(it.Item().Key()), "error", err)
				continue
			}
			if !types.MatchAttribute(adv, attr, value) {
				continue
			}
			out = append(out, adv)
			if max > 0 && len(out) >= max {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Flush 实现 Store
func (s *BadgerStore) Flush(kind types.AdvKind) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.db.DropPrefix(advPrefix(kind))
}

// Meta 实现 Store
func (s *BadgerStore) Meta(key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, ErrClosed
	}

	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixMeta + key))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		value = string(val)
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetMeta 实现 Store
func (s *BadgerStore) SetMeta(key, value string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixMeta+key), []byte(value))
	})
}

// Close 实现 Store
func (s *BadgerStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.gcCancel != nil {
		s.gcCancel()
		s.gcWg.Wait()
	}
	return s.db.Close()
}

// gcLoop 周期性回收值日志
func (s *BadgerStore) gcLoop(ctx context.Context, interval time.Duration) {
	defer s.gcWg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// 一次 GC 可能只回收一个文件，循环直到无可回收
			for {
				if err := s.db.RunValueLogGC(0.5); err != nil {
					if !errors.Is(err, badger.ErrNoRewrite) {
						logger.Debug("值日志 GC 结束", "error", err)
					}
					break
				}
			}
		}
	}
}

// ============================================================================
//                              日志适配
// ============================================================================

// badgerLogger 将 badger 日志接入 LazyLogger
type badgerLogger struct{}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}
