package kafka

import (
	"PrintDungeon/internal/pkg/logger"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second

	retryInitial = 100 * time.Millisecond
	retryMax     = 5 * time.Second
)

var errSkipMessage = errors.New("message skipped")

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 按数量或超时聚合一批消息后处理
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()

	flush := func() {
		if len(batch) > 0 {
			processBatch(session.Context(), session, batch, logic)
			batch = make([]*sarama.ConsumerMessage, 0, batchSize)
		}
	}

	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				flush()
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			flush()
		case <-session.Context().Done():
			return nil
		}
	}
}

// offsetMarker sarama.ConsumerGroupSession 中提交位点所需的部分
type offsetMarker interface {
	MarkMessage(msg *sarama.ConsumerMessage, metadata string)
	Commit()
}

// processBatch 并发处理一批消息，失败的消息按指数退避重试直到成功或会话结束
func processBatch(ctx context.Context, marker offsetMarker, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)
		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			msgCtx := logger.WithTraceID(ctx, "kafka")
			retryInterval := retryInitial

			for {
				err := logic(msgCtx, m)
				if err == nil || errors.Is(err, errSkipMessage) {
					return
				}

				log.ErrorContext(msgCtx, "process message error",
					"topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "err", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(retryInterval):
				}

				retryInterval *= 2
				if retryInterval > retryMax {
					retryInterval = retryMax
				}
			}
		}(msg)
	}

	wg.Wait()
	if ctx.Err() != nil {
		return
	}

	marker.MarkMessage(messages[len(messages)-1], "")
	marker.Commit()
}

// ToCanalMessage 解析 Canal 消息，表名不匹配或无数据时返回 errSkipMessage
func ToCanalMessage(msg *sarama.ConsumerMessage, tableName string) (*CanalMessage, error) {
	var canalMsg CanalMessage
	if err := json.Unmarshal(msg.Value, &canalMsg); err != nil {
		return nil, fmt.Errorf("%w: unmarshal canal message: %v", errSkipMessage, err)
	}

	if canalMsg.IsDDL || canalMsg.Table != tableName {
		return nil, errSkipMessage
	}

	if len(canalMsg.Data) == 0 {
		return nil, errSkipMessage
	}

	return &canalMsg, nil
}
