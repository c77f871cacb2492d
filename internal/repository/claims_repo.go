package repository

import (
	"PrintDungeon/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClaimsRepo 身份提供方的自定义声明存储
type ClaimsRepo interface {
	// GetClaims 无记录时返回空集合
	GetClaims(ctx context.Context, userID string) (model.ClaimSet, error)
	// SetClaims 整体覆盖写回
	SetClaims(ctx context.Context, userID string, claims model.ClaimSet) error
}

type ClaimsRepoImpl struct {
	db  *gorm.DB
	now func() time.Time
}

func NewClaimsRepo(db *gorm.DB) ClaimsRepo {
	return &ClaimsRepoImpl{db: db, now: time.Now}
}

func (s *ClaimsRepoImpl) GetClaims(ctx context.Context, userID string) (model.ClaimSet, error) {
	var row model.AuthClaims
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ClaimSet{}, nil
		}
		return nil, fmt.Errorf("get claims of %s: %w", userID, err)
	}
	if row.Claims == nil {
		return model.ClaimSet{}, nil
	}
	return row.Claims, nil
}

func (s *ClaimsRepoImpl) SetClaims(ctx context.Context, userID string, claims model.ClaimSet) error {
	row := &model.AuthClaims{UserID: userID, Claims: claims, UpdatedAt: s.now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"claims", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("set claims of %s: %w", userID, err)
	}
	return nil
}
