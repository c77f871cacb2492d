package service

import (
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/pkg/mongo"
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type SysBoxService interface {
	GetNotificationList(ctx context.Context, userID string, page, pageSize int) ([]*dto.SysBoxDTO, error)
	GetUnreadCount(ctx context.Context, userID string) (*dto.SysBoxUnreadDTO, error)
	MarkRead(ctx context.Context, userID string, msgID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type sysBoxServiceImpl struct {
	sysBoxRepo mongo.SysBoxRepo
}

func NewSysBoxService(sysBox mongo.SysBoxRepo) SysBoxService {
	return &sysBoxServiceImpl{sysBoxRepo: sysBox}
}

func (s *sysBoxServiceImpl) GetNotificationList(ctx context.Context, userID string, page, pageSize int) ([]*dto.SysBoxDTO, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if page < 1 || pageSize < 1 {
		return nil, ErrParamInvalid
	}

	list, err := s.sysBoxRepo.GetNotificationList(ctx, userID, int64(pageSize), int64((page-1)*pageSize))
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SysBoxDTO, 0, len(list))
	if err = copier.CopyWithOption(&res, list, sysBoxCopyOption); err != nil {
		return nil, err
	}
	return res, nil
}

var sysBoxCopyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: primitive.ObjectID{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return src.(primitive.ObjectID).Hex(), nil
			},
		},
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return src.(time.Time).UTC().Format(time.RFC3339), nil
			},
		},
	},
}

func (s *sysBoxServiceImpl) GetUnreadCount(ctx context.Context, userID string) (*dto.SysBoxUnreadDTO, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	count, err := s.sysBoxRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.SysBoxUnreadDTO{UnreadCount: count}, nil
}

// MarkRead 只能标记发给自己的通知
func (s *sysBoxServiceImpl) MarkRead(ctx context.Context, userID string, msgID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return ErrParamInvalid
	}

	notice, err := s.sysBoxRepo.GetByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return ErrSysBoxNotFound
		}
		return err
	}
	if notice.ReceiverID != userID {
		return ErrPermissionDenied
	}
	if notice.IsRead {
		return nil
	}
	return s.sysBoxRepo.MarkAsRead(ctx, userID, objectID)
}

func (s *sysBoxServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	return s.sysBoxRepo.MarkAllAsRead(ctx, userID)
}
