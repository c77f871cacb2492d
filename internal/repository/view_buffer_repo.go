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

// ErrBatchConflict 批次中的部分行已被其他执行者标记
var ErrBatchConflict = errors.New("view buffer batch already claimed")

// ViewerRollup 一批浏览事件按 (模型, 访客) 聚合后的结果
type ViewerRollup struct {
	ModelID      string
	ViewerID     string
	SessionViews int64
	LatestAt     time.Time
}

type ViewBufferRepo interface {
	// RecordView 同一事务内自增 views 并追加缓冲行
	RecordView(ctx context.Context, modelID, viewerID string, now time.Time) error
	FetchUnprocessed(ctx context.Context, limit int) ([]*model.ViewBufferEntry, error)
	// ApplyBatch 合并汇总并标记已处理，任何一行已被标记时整体回滚
	ApplyBatch(ctx context.Context, entryIDs []uint64, rollups []*ViewerRollup, now time.Time) error
	// PurgeProcessed 删除 before 之前已处理的行，返回删除数量
	PurgeProcessed(ctx context.Context, before time.Time, limit int) (int64, error)
}

type ViewBufferRepoImpl struct {
	db *gorm.DB
}

func NewViewBufferRepo(db *gorm.DB) ViewBufferRepo {
	return &ViewBufferRepoImpl{db: db}
}

func (s *ViewBufferRepoImpl) RecordView(ctx context.Context, modelID, viewerID string, now time.Time) error {
	err := runTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureModel(tx, modelID); err != nil {
			return err
		}
		err := tx.Model(&model.PrintModel{}).
			Where("id = ?", modelID).
			Updates(map[string]interface{}{
				"views":          incr("views"),
				"last_viewed_at": now,
				"updated_at":     now,
			}).Error
		if err != nil {
			return err
		}
		return tx.Create(&model.ViewBufferEntry{
			ModelID:   modelID,
			ViewerID:  viewerID,
			Timestamp: now,
			Processed: false,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("record view %s/%s: %w", modelID, viewerID, err)
	}
	return nil
}

func (s *ViewBufferRepoImpl) FetchUnprocessed(ctx context.Context, limit int) ([]*model.ViewBufferEntry, error) {
	var entries []*model.ViewBufferEntry
	err := s.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("id asc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("fetch unprocessed views: %w", err)
	}
	return entries, nil
}

func (s *ViewBufferRepoImpl) ApplyBatch(ctx context.Context, entryIDs []uint64, rollups []*ViewerRollup, now time.Time) error {
	if len(entryIDs) == 0 {
		return nil
	}
	return runTx(ctx, s.db, func(tx *gorm.DB) error {
		res := tx.Model(&model.ViewBufferEntry{}).
			Where("id IN ? AND processed = ?", entryIDs, false).
			Update("processed", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(entryIDs)) {
			return fmt.Errorf("%w: flipped %d of %d", ErrBatchConflict, res.RowsAffected, len(entryIDs))
		}

		for _, r := range rollups {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"total_engagements":  gorm.Expr("total_engagements + ?", r.SessionViews),
					"last_engagement_at": r.LatestAt,
					"updated_at":         now,
				}),
			}).Create(&model.ViewerActivity{
				ID:               model.ViewerActivityID(r.ModelID, r.ViewerID),
				ModelID:          r.ModelID,
				ViewerID:         r.ViewerID,
				TotalEngagements: r.SessionViews,
				LastEngagementAt: r.LatestAt,
				UpdatedAt:        now,
			}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ViewBufferRepoImpl) PurgeProcessed(ctx context.Context, before time.Time, limit int) (int64, error) {
	var deleted int64
	err := runTx(ctx, s.db, func(tx *gorm.DB) error {
		var ids []uint64
		err := tx.Model(&model.ViewBufferEntry{}).
			Where("processed = ? AND timestamp < ?", true, before).
			Order("id asc").
			Limit(limit).
			Pluck("id", &ids).Error
		if err != nil || len(ids) == 0 {
			return err
		}

		res := tx.Where("id IN ? AND processed = ?", ids, true).Delete(&model.ViewBufferEntry{})
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("purge processed views: %w", err)
	}
	return deleted, nil
}
