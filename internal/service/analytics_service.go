package service

import (
	"PrintDungeon/internal/api/config"
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/model"
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"sort"
	"time"
)

const (
	DefaultBatchSize  = 100
	DefaultRetention  = 24 * time.Hour
	DefaultPurgeLimit = 500
)

// AnalyticsService 浏览缓冲区的批量汇总与清理，不修改模型的实时 views
type AnalyticsService interface {
	// ProcessViewBuffer 汇总一批未处理的浏览事件，返回处理的行数
	ProcessViewBuffer(ctx context.Context) (int, error)
	// PurgeProcessedViews 删除超过保留期的已处理行
	PurgeProcessedViews(ctx context.Context) (int64, error)
	ListViewers(ctx context.Context, callerID string, callerRoles []string, modelID string, page, pageSize int) (*dto.ViewerActivityListDTO, error)
}

type analyticsServiceImpl struct {
	viewBufferRepo     repository.ViewBufferRepo
	viewerActivityRepo repository.ViewerActivityRepo
	modelRepo          repository.ModelRepo
	batchSize          int
	retention          time.Duration
	purgeLimit         int
	now                func() time.Time
}

func NewAnalyticsService(
	cfg config.AnalyticsConfig,
	viewBufferRepo repository.ViewBufferRepo,
	viewerActivityRepo repository.ViewerActivityRepo,
	modelRepo repository.ModelRepo,
) AnalyticsService {
	s := &analyticsServiceImpl{
		viewBufferRepo:     viewBufferRepo,
		viewerActivityRepo: viewerActivityRepo,
		modelRepo:          modelRepo,
		batchSize:          cfg.BatchSize,
		retention:          cfg.Retention,
		purgeLimit:         cfg.PurgeLimit,
		now:                time.Now,
	}
	if s.batchSize <= 0 {
		s.batchSize = DefaultBatchSize
	}
	if s.retention <= 0 {
		s.retention = DefaultRetention
	}
	if s.purgeLimit <= 0 {
		s.purgeLimit = DefaultPurgeLimit
	}
	return s
}

func (s *analyticsServiceImpl) ProcessViewBuffer(ctx context.Context) (int, error) {
	entries, err := s.viewBufferRepo.FetchUnprocessed(ctx, s.batchSize)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	ids, rollups := groupEntries(entries)
	err = s.viewBufferRepo.ApplyBatch(ctx, ids, rollups, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrBatchConflict) {
			log.WarnContext(ctx, "view buffer batch claimed concurrently, skipping", "err", err)
			return 0, nil
		}
		return 0, err
	}

	log.InfoContext(ctx, "view buffer batch processed", "rows", len(entries), "groups", len(rollups))
	return len(entries), nil
}

// groupEntries 按 modelId_viewerId 聚合，结果按键排序以保证写入顺序稳定
func groupEntries(entries []*model.ViewBufferEntry) ([]uint64, []*repository.ViewerRollup) {
	ids := make([]uint64, 0, len(entries))
	groups := make(map[string]*repository.ViewerRollup)
	keys := make([]string, 0)

	for _, e := range entries {
		ids = append(ids, e.ID)
		key := model.ViewerActivityID(e.ModelID, e.ViewerID)
		g, ok := groups[key]
		if !ok {
			g = &repository.ViewerRollup{ModelID: e.ModelID, ViewerID: e.ViewerID, LatestAt: e.Timestamp}
			groups[key] = g
			keys = append(keys, key)
		}
		g.SessionViews++
		if e.Timestamp.After(g.LatestAt) {
			g.LatestAt = e.Timestamp
		}
	}

	sort.Strings(keys)
	rollups := make([]*repository.ViewerRollup, 0, len(keys))
	for _, k := range keys {
		rollups = append(rollups, groups[k])
	}
	return ids, rollups
}

func (s *analyticsServiceImpl) PurgeProcessedViews(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-s.retention)
	deleted, err := s.viewBufferRepo.PurgeProcessed(ctx, cutoff, s.purgeLimit)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.InfoContext(ctx, "view buffer purged", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}

// ListViewers 仅模型作者与管理员可见
func (s *analyticsServiceImpl) ListViewers(ctx context.Context, callerID string, callerRoles []string, modelID string, page, pageSize int) (*dto.ViewerActivityListDTO, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	if modelID == "" || page < 1 || pageSize < 1 {
		return nil, ErrParamInvalid
	}

	m, err := s.modelRepo.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrModelNotFound
	}
	if m.OwnerID != callerID && !hasRole(callerRoles, consts.RoleAdmin) {
		return nil, ErrPermissionDenied
	}

	items, total, err := s.viewerActivityRepo.ListByModel(ctx, modelID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	res := &dto.ViewerActivityListDTO{Total: total, Items: make([]*dto.ViewerActivityDTO, 0, len(items))}
	for _, a := range items {
		res.Items = append(res.Items, &dto.ViewerActivityDTO{
			ModelID:          a.ModelID,
			ViewerID:         a.ViewerID,
			TotalEngagements: a.TotalEngagements,
			LastEngagementAt: a.LastEngagementAt.UTC().Format(time.RFC3339),
			UpdatedAt:        a.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return res, nil
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
