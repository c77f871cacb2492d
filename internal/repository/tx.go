package repository

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	txMaxAttempts    = 3
	txInitialBackoff = 20 * time.Millisecond
	txMaxBackoff     = 200 * time.Millisecond
)

const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// isRetryable 死锁与锁等待超时可以整体重放事务
func isRetryable(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlErrDeadlock || me.Number == mysqlErrLockWaitTimeout
	}
	return false
}

// runTx 执行事务，遇到可重试的锁冲突时按指数退避重放，最多 txMaxAttempts 次
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	backoff := txInitialBackoff
	var err error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		err = db.WithContext(ctx).Transaction(fn)
		if err == nil || !isRetryable(err) || attempt == txMaxAttempts {
			return err
		}

		log.WarnContext(ctx, "transaction conflict, retrying", "attempt", attempt, "err", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > txMaxBackoff {
			backoff = txMaxBackoff
		}
	}
	return err
}
