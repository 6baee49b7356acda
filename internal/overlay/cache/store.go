package cache

import (
	"fmt"
	"time"

	"github.com/dep2p/go-lobby/pkg/types"
)

// Store 公告缓存
type Store interface {
	// Put 写入公告，ttl <= 0 表示不过期
	//
	// 同类型同 ID 的公告覆盖旧值。
	Put(adv types.Advertisement, ttl time.Duration) error

	// Query 查询未过期且属性匹配的公告，max <= 0 表示不限
	Query(kind types.AdvKind, attr, value string, max int) ([]types.Advertisement, error)

	// Flush 清除指定类型的全部公告
	Flush(kind types.AdvKind) error

	// Meta 读取元数据
	Meta(key string) (string, bool, error)

	// SetMeta 写入元数据
	SetMeta(key, value string) error

	// Close 关闭缓存
	Close() error
}

// validate 检查公告能否入库
func validate(adv types.Advertisement) error {
	if !adv.Kind.Valid() {
		return fmt.Errorf("%w: kind %d", ErrInvalidAdvertisement, adv.Kind)
	}
	if adv.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidAdvertisement)
	}
	return nil
}
