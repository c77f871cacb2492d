package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SysBoxRepo interface {
	// CreateNotification 相同 DedupKey 的通知只写入一次
	CreateNotification(ctx context.Context, msg *SysBoxModel) error
	GetNotificationList(ctx context.Context, userID string, limit, offset int64) ([]*SysBoxModel, error)
	MarkAsRead(ctx context.Context, userID string, id primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, userID string) error
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*SysBoxModel, error)
}

type sysBoxRepoImpl struct {
	col *mongo.Collection
}

func NewSysBoxRepo(db *mongo.Database) SysBoxRepo {
	return &sysBoxRepoImpl{
		col: db.Collection(sysBoxCollection),
	}
}

func (s *sysBoxRepoImpl) CreateNotification(ctx context.Context, msg *SysBoxModel) error {
	_, err := s.col.InsertOne(ctx, msg)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// GetNotificationList 分页获取用户的通知列表 (按时间倒序)
func (s *sysBoxRepoImpl) GetNotificationList(ctx context.Context, userID string, limit, offset int64) ([]*SysBoxModel, error) {
	filter := bson.M{"receiver_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*SysBoxModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *sysBoxRepoImpl) MarkAsRead(ctx context.Context, userID string, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "receiver_id": userID}
	update := bson.M{"$set": bson.M{"is_read": true}}
	result, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *sysBoxRepoImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	filter := bson.M{"receiver_id": userID, "is_read": false}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := s.col.UpdateMany(ctx, filter, update)
	return err
}

func (s *sysBoxRepoImpl) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"receiver_id": userID, "is_read": false})
}

func (s *sysBoxRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*SysBoxModel, error) {
	var msg SysBoxModel
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
