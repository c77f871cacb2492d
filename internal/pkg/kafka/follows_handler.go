package kafka

import (
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/pkg/mongo"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

// FollowsHandler 消费 follows 表的 binlog，为被关注者生成通知
type FollowsHandler struct {
	sysBoxRepo mongo.SysBoxRepo
	now        func() time.Time
}

func NewFollowsHandler(sysBox mongo.SysBoxRepo) *FollowsHandler {
	return &FollowsHandler{sysBoxRepo: sysBox, now: time.Now}
}

func (s *FollowsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("follows consumer setup")
	return nil
}

func (s *FollowsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("follows consumer cleanup")
	return nil
}

func (s *FollowsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.logic)
}

func (s *FollowsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "follows")
	if err != nil {
		return err
	}
	if canalMsg.Type != INSERT {
		return nil
	}

	for _, row := range canalMsg.Data {
		followerID, followingID := Str(row, "follower_id"), Str(row, "following_id")
		if followerID == "" || followingID == "" || followerID == followingID {
			continue
		}

		err = s.sysBoxRepo.CreateNotification(ctx, &mongo.SysBoxModel{
			ReceiverID: followingID,
			SenderID:   followerID,
			Type:       consts.NoticeTypeFollow,
			DedupKey:   fmt.Sprintf("follow:%s:%s", followerID, followingID),
			Content:    "关注了你",
			CreatedAt:  s.now(),
		})
		if err != nil {
			return fmt.Errorf("create follow notification: %w", err)
		}
	}
	return nil
}
