package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SysBoxModel 系统通知模型
type SysBoxModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID string             `bson:"receiver_id" json:"receiverId"`
	SenderID   string             `bson:"sender_id" json:"senderId"`
	Type       int8               `bson:"type" json:"type"`          // 1-模型被点赞, 5-被关注
	TargetID   string             `bson:"target_id" json:"targetId"` // 关联的模型ID，关注通知为空
	DedupKey   string             `bson:"dedup_key,omitempty" json:"-"`
	Content    string             `bson:"content" json:"content"`
	Payload    map[string]any     `bson:"payload,omitempty" json:"payload"`
	IsRead     bool               `bson:"is_read" json:"isRead"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
