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

type UserRepo interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	// UpdateRoles 只覆盖 roles 字段
	UpdateRoles(ctx context.Context, userID string, roles []string) error
}

type UserRepoImpl struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db, now: time.Now}
}

// GetUser 用户不存在时返回 nil, nil
func (s *UserRepoImpl) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return &user, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(user).Error
}

func (s *UserRepoImpl) UpdateRoles(ctx context.Context, userID string, roles []string) error {
	res := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"roles":      model.StringList(roles),
			"updated_at": s.now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("update roles of %s: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
