package kafka

import (
	"PrintDungeon/internal/api/config"
	"PrintDungeon/internal/pkg/mongo"
	"PrintDungeon/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"sync"

	"github.com/IBM/sarama"
)

type consumer struct {
	name    string
	topic   string
	group   sarama.ConsumerGroup
	handler sarama.ConsumerGroupHandler
}

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	consumers []*consumer
}

func NewConsumerManager(
	cfg *config.Config,
	modelRepo repository.ModelRepo,
	sysBoxRepo mongo.SysBoxRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	likesGroup, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaLikeConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	followsGroup, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaFollowConsumer.GroupID, saramaCfg)
	if err != nil {
		_ = likesGroup.Close()
		return nil, err
	}

	return &ConsumerManager{
		consumers: []*consumer{
			{
				name:    "likes",
				topic:   cfg.KafkaLikeConsumer.Topic,
				group:   likesGroup,
				handler: NewLikesHandler(modelRepo, sysBoxRepo),
			},
			{
				name:    "follows",
				topic:   cfg.KafkaFollowConsumer.Topic,
				group:   followsGroup,
				handler: NewFollowsHandler(sysBoxRepo),
			},
		},
	}, nil
}

// Start 启动所有消费者，阻塞到 ctx 结束后关闭
func (m *ConsumerManager) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, c := range m.consumers {
		wg.Add(1)
		go func(c *consumer) {
			defer wg.Done()
			log.Info("consumer started", "name", c.name, "topic", c.topic)
			for {
				if err := c.group.Consume(ctx, []string{c.topic}, c.handler); err != nil {
					if errors.Is(err, sarama.ErrClosedConsumerGroup) {
						return
					}
					log.Error("Error from consumer", "name", c.name, "err", err)
				}
				if ctx.Err() != nil {
					return
				}
			}
		}(c)

		go func(c *consumer) {
			for err := range c.group.Errors() {
				log.Error("consumer group error", "name", c.name, "err", err)
			}
		}(c)
	}

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	for _, c := range m.consumers {
		if err := c.group.Close(); err != nil {
			log.Error("Failed to close consumer", "name", c.name, "err", err)
		}
	}
	wg.Wait()
	return nil
}
