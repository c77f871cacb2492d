package repository

import (
	"PrintDungeon/internal/model"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationRepo 关注、点赞、收藏的切换，关系行与计数在同一事务内变更
type RelationRepo interface {
	// ToggleFollow 切换关注并返回切换后的状态
	ToggleFollow(ctx context.Context, followerID, followingID string, now time.Time) (bool, error)
	// SetFollow 设置为指定状态，已处于该状态时不写入
	SetFollow(ctx context.Context, followerID, followingID string, follow bool, now time.Time) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	// FollowCounts 返回 target 的粉丝数和 actor 的关注数
	FollowCounts(ctx context.Context, actorID, targetID string) (followers int64, following int64, err error)

	ToggleLike(ctx context.Context, userID, modelID string, now time.Time) (bool, error)
	IsLiked(ctx context.Context, userID, modelID string) (bool, error)

	ToggleFavorite(ctx context.Context, userID, modelID string, now time.Time) (bool, error)
	IsFavorite(ctx context.Context, userID, modelID string) (bool, error)
}

type RelationRepoImpl struct {
	db *gorm.DB
}

func NewRelationRepo(db *gorm.DB) RelationRepo {
	return &RelationRepoImpl{db: db}
}

func (s *RelationRepoImpl) ToggleFollow(ctx context.Context, followerID, followingID string, now time.Time) (bool, error) {
	var following bool
	err := runTx(ctx, s.db, func(tx *gorm.DB) error {
		exists, err := s.lockFollow(tx, followerID, followingID)
		if err != nil {
			return err
		}
		following = !exists
		return s.applyFollow(tx, followerID, followingID, following, now)
	})
	if err != nil {
		return false, fmt.Errorf("toggle follow %s -> %s: %w", followerID, followingID, err)
	}
	return following, nil
}

func (s *RelationRepoImpl) SetFollow(ctx context.Context, followerID, followingID string, follow bool, now time.Time) (bool, error) {
	var changed bool
	err := runTx(ctx, s.db, func(tx *gorm.DB) error {
		exists, err := s.lockFollow(tx, followerID, followingID)
		if err != nil {
			return err
		}
		if exists == follow {
			return nil
		}
		changed = true
		return s.applyFollow(tx, followerID, followingID, follow, now)
	})
	if err != nil {
		return false, fmt.Errorf("set follow %s -> %s: %w", followerID, followingID, err)
	}
	return changed, nil
}

// lockFollow 确保双方计数行存在，锁定关注者行后读取关系是否存在
func (s *RelationRepoImpl) lockFollow(tx *gorm.DB, followerID, followingID string) (bool, error) {
	if err := ensureUser(tx, followerID, followingID); err != nil {
		return false, err
	}
	if _, err := lockUser(tx, followerID); err != nil {
		return false, err
	}
	return lockedRowExists(tx, &model.Follow{}, model.FollowID(followerID, followingID))
}

func (s *RelationRepoImpl) applyFollow(tx *gorm.DB, followerID, followingID string, follow bool, now time.Time) error {
	id := model.FollowID(followerID, followingID)
	delta := decr
	if follow {
		delta = incr
		err := tx.Create(&model.Follow{
			ID:          id,
			FollowerID:  followerID,
			FollowingID: followingID,
			CreatedAt:   now,
		}).Error
		if err != nil {
			return err
		}
	} else {
		if err := tx.Where("id = ?", id).Delete(&model.Follow{}).Error; err != nil {
			return err
		}
	}

	if err := bumpUser(tx, followerID, "following_count", delta("following_count"), now); err != nil {
		return err
	}
	return bumpUser(tx, followingID, "followers_count", delta("followers_count"), now)
}

func (s *RelationRepoImpl) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return rowExists(s.db.WithContext(ctx), &model.Follow{}, model.FollowID(followerID, followingID))
}

func (s *RelationRepoImpl) FollowCounts(ctx context.Context, actorID, targetID string) (int64, int64, error) {
	var users []*model.User
	err := s.db.WithContext(ctx).
		Select("id", "followers_count", "following_count").
		Where("id IN ?", []string{actorID, targetID}).
		Find(&users).Error
	if err != nil {
		return 0, 0, err
	}

	var followers, following int64
	for _, u := range users {
		if u.ID == targetID {
			followers = u.FollowersCount
		}
		if u.ID == actorID {
			following = u.FollowingCount
		}
	}
	return followers, following, nil
}

func (s *RelationRepoImpl) ToggleLike(ctx context.Context, userID, modelID string, now time.Time) (bool, error) {
	var liked bool
	err := runTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureUser(tx, userID); err != nil {
			return err
		}
		if err := ensureModel(tx, modelID); err != nil {
			return err
		}
		if _, err := lockUser(tx, userID); err != nil {
			return err
		}

		id := model.LikeID(userID, modelID)
		exists, err := lockedRowExists(tx, &model.Like{}, id)
		if err != nil {
			return err
		}

		liked = !exists
		if liked {
			err = tx.Create(&model.Like{ID: id, UserID: userID, ModelID: modelID, CreatedAt: now}).Error
			if err != nil {
				return err
			}
			return bumpModel(tx, modelID, "likes", incr("likes"), now)
		}
		if err = tx.Where("id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return bumpModel(tx, modelID, "likes", decr("likes"), now)
	})
	if err != nil {
		return false, fmt.Errorf("toggle like %s -> %s: %w", userID, modelID, err)
	}
	return liked, nil
}

func (s *RelationRepoImpl) IsLiked(ctx context.Context, userID, modelID string) (bool, error) {
	return rowExists(s.db.WithContext(ctx), &model.Like{}, model.LikeID(userID, modelID))
}

// ToggleFavorite 收藏存放在用户行的 favorites 数组中
func (s *RelationRepoImpl) ToggleFavorite(ctx context.Context, userID, modelID string, now time.Time) (bool, error) {
	var favorite bool
	err := runTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureUser(tx, userID); err != nil {
			return err
		}
		if err := ensureModel(tx, modelID); err != nil {
			return err
		}
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		favorites := user.Favorites
		delta := decr
		favorite = !favorites.Contains(modelID)
		if favorite {
			favorites = append(favorites, modelID)
			delta = incr
		} else {
			favorites = favorites.Without(modelID)
		}

		err = tx.Model(&model.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{"favorites": favorites, "updated_at": now}).Error
		if err != nil {
			return err
		}
		return bumpModel(tx, modelID, "favorites_count", delta("favorites_count"), now)
	})
	if err != nil {
		return false, fmt.Errorf("toggle favorite %s -> %s: %w", userID, modelID, err)
	}
	return favorite, nil
}

func (s *RelationRepoImpl) IsFavorite(ctx context.Context, userID, modelID string) (bool, error) {
	var user model.User
	err := s.db.WithContext(ctx).Select("id", "favorites").Where("id = ?", userID).Limit(1).Find(&user).Error
	if err != nil {
		return false, err
	}
	return user.Favorites.Contains(modelID), nil
}

func rowExists(db *gorm.DB, dest interface{}, id string) (bool, error) {
	var count int64
	err := db.Model(dest).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// lockedRowExists 仅在事务内使用，读取的同时加行锁
func lockedRowExists(tx *gorm.DB, dest interface{}, id string) (bool, error) {
	var count int64
	err := tx.Model(dest).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
