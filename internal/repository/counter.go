package repository

import (
	"PrintDungeon/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ensureModel 计数行不存在时创建
func ensureModel(tx *gorm.DB, modelID string) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.PrintModel{ID: modelID}).Error
}

func ensureUser(tx *gorm.DB, userIDs ...string) error {
	for _, id := range userIDs {
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.User{ID: id}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// incr 返回计数自增表达式
func incr(column string) clause.Expr {
	return gorm.Expr(column + " + 1")
}

// decr 返回不会低于 0 的计数自减表达式
func decr(column string) clause.Expr {
	return gorm.Expr("CASE WHEN " + column + " > 0 THEN " + column + " - 1 ELSE 0 END")
}

func bumpModel(tx *gorm.DB, modelID, column string, delta clause.Expr, now time.Time) error {
	return tx.Model(&model.PrintModel{}).
		Where("id = ?", modelID).
		Updates(map[string]interface{}{column: delta, "updated_at": now}).Error
}

func bumpUser(tx *gorm.DB, userID, column string, delta clause.Expr, now time.Time) error {
	return tx.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{column: delta, "updated_at": now}).Error
}

// lockUser 锁定用户行，串行化同一用户的并发切换
func lockUser(tx *gorm.DB, userID string) (*model.User, error) {
	var user model.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		Take(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
