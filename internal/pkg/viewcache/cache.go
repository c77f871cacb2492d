package viewcache

import (
	"PrintDungeon/internal/api/config"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultCooldown = time.Hour
	DefaultTTL      = 5 * time.Minute
)

// Cache 浏览冷却闸门：同一 (实体, 访客) 在冷却期内只接受一次
type Cache interface {
	Init() error
	Shutdown()
	// ShouldAccept 冷却期内已有记录时返回 false
	ShouldAccept(ctx context.Context, entityID, viewerID string, now time.Time) bool
	// Record 无条件写入接受时间，仅在写库成功后调用
	Record(ctx context.Context, entityID, viewerID string, now time.Time)
}

func Key(entityID, viewerID string) string {
	return entityID + "_" + viewerID
}

// New 按配置选择后端，redis 后端需要传入客户端
func New(cfg config.ViewConfig, rdb *redis.Client) (Cache, error) {
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch cfg.CacheBackend {
	case "", "memory":
		return NewMemoryCache(cooldown, ttl), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("view cache backend redis requires a redis client")
		}
		return NewRedisCache(rdb, cooldown), nil
	default:
		return nil, fmt.Errorf("unknown view cache backend %q", cfg.CacheBackend)
	}
}
