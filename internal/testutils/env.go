// Package testutils 提供测试用的 SQLite / miniredis 环境
package testutils

import (
	"PrintDungeon/internal/pkg/database"
	"PrintDungeon/internal/pkg/redis"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB 为每个测试创建独立的内存库并完成迁移
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared&_busy_timeout=5000", dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// 内存库在多连接下事务互相阻塞，统一走单连接
	sqlDB.SetMaxOpenConns(1)

	if err = database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// NewRedis 启动 miniredis 并替换全局客户端
func NewRedis(t testing.TB) (*miniredis.Miniredis, *redisv9.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})

	prev := redis.Rdb
	redis.Rdb = client
	t.Cleanup(func() {
		redis.Rdb = prev
		_ = client.Close()
	})
	return mr, client
}
