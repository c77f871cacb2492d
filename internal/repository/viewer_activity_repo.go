package repository

import (
	"PrintDungeon/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type ViewerActivityRepo interface {
	ListByModel(ctx context.Context, modelID string, limit, offset int) ([]*model.ViewerActivity, int64, error)
	GetActivity(ctx context.Context, modelID, viewerID string) (*model.ViewerActivity, error)
}

type ViewerActivityRepoImpl struct {
	db *gorm.DB
}

func NewViewerActivityRepo(db *gorm.DB) ViewerActivityRepo {
	return &ViewerActivityRepoImpl{db: db}
}

// ListByModel 按最近互动时间倒序分页
func (s *ViewerActivityRepoImpl) ListByModel(ctx context.Context, modelID string, limit, offset int) ([]*model.ViewerActivity, int64, error) {
	var total int64
	query := s.db.WithContext(ctx).Model(&model.ViewerActivity{}).Where("model_id = ?", modelID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count viewer activity: %w", err)
	}

	var items []*model.ViewerActivity
	err := s.db.WithContext(ctx).
		Where("model_id = ?", modelID).
		Order("last_engagement_at desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list viewer activity: %w", err)
	}
	return items, total, nil
}

// GetActivity 不存在时返回 nil, nil
func (s *ViewerActivityRepoImpl) GetActivity(ctx context.Context, modelID, viewerID string) (*model.ViewerActivity, error) {
	var items []*model.ViewerActivity
	err := s.db.WithContext(ctx).
		Where("id = ?", model.ViewerActivityID(modelID, viewerID)).
		Limit(1).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}
