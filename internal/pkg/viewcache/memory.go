package viewcache

import (
	"context"
	log "log/slog"
	"sync"
	"time"
)

// MemoryCache 进程内实现，重启或多实例部署时去重会失效
type MemoryCache struct {
	cooldown time.Duration
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]time.Time

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewMemoryCache(cooldown, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		cooldown: cooldown,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]time.Time),
	}
}

// Init 启动定期清理，重复调用无副作用
func (c *MemoryCache) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return nil
	}
	c.stop = make(chan struct{})

	ticker := time.NewTicker(c.ttl)
	c.wg.Add(1)
	go func(stop <-chan struct{}) {
		defer c.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := c.Sweep(c.now()); n > 0 {
					log.Debug("view cache swept", "evicted", n)
				}
			case <-stop:
				return
			}
		}
	}(c.stop)
	return nil
}

// Shutdown 停止清理协程并等待其退出
func (c *MemoryCache) Shutdown() {
	c.mu.Lock()
	stop := c.stop
	c.stop = nil
	c.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	c.wg.Wait()
}

func (c *MemoryCache) ShouldAccept(_ context.Context, entityID, viewerID string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	prior, ok := c.entries[Key(entityID, viewerID)]
	if !ok {
		return true
	}
	return now.Sub(prior) >= c.cooldown
}

func (c *MemoryCache) Record(_ context.Context, entityID, viewerID string, now time.Time) {
	c.mu.Lock()
	c.entries[Key(entityID, viewerID)] = now
	c.mu.Unlock()
}

// Sweep 删除早于 ttl 的条目，返回删除数量
func (c *MemoryCache) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	evicted := 0
	for k, ts := range c.entries {
		if now.Sub(ts) > c.ttl {
			delete(c.entries, k)
			evicted++
		}
	}
	return evicted
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
