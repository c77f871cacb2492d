package kafka

import (
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/pkg/mongo"
	"PrintDungeon/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

// LikesHandler 消费 likes 表的 binlog，为模型作者生成点赞通知
type LikesHandler struct {
	modelRepo  repository.ModelRepo
	sysBoxRepo mongo.SysBoxRepo
	now        func() time.Time
}

func NewLikesHandler(modelRepo repository.ModelRepo, sysBox mongo.SysBoxRepo) *LikesHandler {
	return &LikesHandler{
		modelRepo:  modelRepo,
		sysBoxRepo: sysBox,
		now:        time.Now,
	}
}

func (s *LikesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("model like consumer setup")
	return nil
}

func (s *LikesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("model like consumer cleanup")
	return nil
}

func (s *LikesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.logic)
}

func (s *LikesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "likes")
	if err != nil {
		return err
	}

	// 取消点赞不撤回通知
	if canalMsg.Type != INSERT {
		return nil
	}

	for _, row := range canalMsg.Data {
		if err = s.notify(ctx, Str(row, "user_id"), Str(row, "model_id")); err != nil {
			return err
		}
	}
	return nil
}

func (s *LikesHandler) notify(ctx context.Context, likerID, modelID string) error {
	if likerID == "" || modelID == "" {
		return nil
	}

	m, err := s.modelRepo.GetModel(ctx, modelID)
	if err != nil {
		return err
	}
	if m == nil || m.OwnerID == "" || m.OwnerID == likerID {
		return nil
	}

	notification := &mongo.SysBoxModel{
		ReceiverID: m.OwnerID,
		SenderID:   likerID,
		Type:       consts.NoticeTypeModelLike,
		TargetID:   modelID,
		DedupKey:   fmt.Sprintf("like:%s:%s", likerID, modelID),
		Content:    "点赞了你的模型",
		Payload: map[string]any{
			"model_title": m.Title,
		},
		CreatedAt: s.now(),
	}
	if err = s.sysBoxRepo.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("create like notification: %w", err)
	}
	log.InfoContext(ctx, "like notification created", "receiver", m.OwnerID, "model_id", modelID)
	return nil
}
