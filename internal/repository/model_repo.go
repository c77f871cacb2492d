package repository

import (
	"PrintDungeon/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type ModelRepo interface {
	GetModel(ctx context.Context, modelID string) (*model.PrintModel, error)
}

type ModelRepoImpl struct {
	db *gorm.DB
}

func NewModelRepo(db *gorm.DB) ModelRepo {
	return &ModelRepoImpl{db: db}
}

// GetModel 模型不存在时返回 nil, nil
func (s *ModelRepoImpl) GetModel(ctx context.Context, modelID string) (*model.PrintModel, error) {
	var m model.PrintModel
	err := s.db.WithContext(ctx).Where("id = ?", modelID).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get model %s: %w", modelID, err)
	}
	return &m, nil
}

