package logger

import (
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

const slowMongoThreshold = 200 * time.Millisecond

// NewMongoMonitor 只记录失败与慢命令
func NewMongoMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			if evt.Duration <= slowMongoThreshold {
				return
			}
			log.WarnContext(ctx, "MongoDB Slow",
				log.String("command", evt.CommandName),
				log.String("database", evt.DatabaseName),
				log.Duration("latency", evt.Duration),
				log.Int64("request_id", evt.RequestID),
			)
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			log.ErrorContext(ctx, "MongoDB Error",
				log.String("command", evt.CommandName),
				log.String("database", evt.DatabaseName),
				log.Duration("latency", evt.Duration),
				log.Int64("request_id", evt.RequestID),
				log.Any("err", evt.Failure),
			)
		},
	}
}
