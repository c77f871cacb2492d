package viewcache

import (
	"PrintDungeon/internal/pkg/consts"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache 多实例共享的冷却记录，键过期时间即冷却期
type RedisCache struct {
	rdb      *redis.Client
	cooldown time.Duration
}

func NewRedisCache(rdb *redis.Client, cooldown time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, cooldown: cooldown}
}

func (c *RedisCache) Init() error {
	return nil
}

func (c *RedisCache) Shutdown() {}

// ShouldAccept Redis 不可用时放行
func (c *RedisCache) ShouldAccept(ctx context.Context, entityID, viewerID string, now time.Time) bool {
	val, err := c.rdb.Get(ctx, consts.ViewCooldownKey+Key(entityID, viewerID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WarnContext(ctx, "view cache lookup failed, accepting", "err", err)
		}
		return true
	}

	ms, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return true
	}
	return now.Sub(time.UnixMilli(ms)) >= c.cooldown
}

func (c *RedisCache) Record(ctx context.Context, entityID, viewerID string, now time.Time) {
	key := consts.ViewCooldownKey + Key(entityID, viewerID)
	if err := c.rdb.Set(ctx, key, now.UnixMilli(), c.cooldown).Err(); err != nil {
		log.WarnContext(ctx, "view cache record failed", "key", key, "err", err)
	}
}
