package service

import (
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/pkg/viewcache"
	"PrintDungeon/internal/repository"
	"context"
	log "log/slog"
	"time"
)

const ReasonCooldown = "cooldown"

type ViewService interface {
	// TrackModelView 冷却期内的重复浏览不写库
	TrackModelView(ctx context.Context, modelID, viewerID string) (*dto.TrackViewDTO, error)
	GetModelViewCount(ctx context.Context, modelID string) (*dto.ViewCountDTO, error)
}

type viewServiceImpl struct {
	viewBufferRepo repository.ViewBufferRepo
	modelRepo      repository.ModelRepo
	cache          viewcache.Cache
	now            func() time.Time
}

func NewViewService(viewBufferRepo repository.ViewBufferRepo, modelRepo repository.ModelRepo, cache viewcache.Cache) ViewService {
	return newViewService(viewBufferRepo, modelRepo, cache, time.Now)
}

func newViewService(viewBufferRepo repository.ViewBufferRepo, modelRepo repository.ModelRepo, cache viewcache.Cache, now func() time.Time) *viewServiceImpl {
	return &viewServiceImpl{
		viewBufferRepo: viewBufferRepo,
		modelRepo:      modelRepo,
		cache:          cache,
		now:            now,
	}
}

func (s *viewServiceImpl) TrackModelView(ctx context.Context, modelID, viewerID string) (*dto.TrackViewDTO, error) {
	if !validID(modelID, maxEntityIDLen) || !validID(viewerID, maxViewerIDLen) {
		return nil, ErrParamInvalid
	}

	now := s.now().UTC()
	if !s.cache.ShouldAccept(ctx, modelID, viewerID, now) {
		return &dto.TrackViewDTO{Success: false, Reason: ReasonCooldown}, nil
	}

	if err := s.viewBufferRepo.RecordView(ctx, modelID, viewerID, now); err != nil {
		log.ErrorContext(ctx, "record view failed", "model_id", modelID, "err", err)
		return nil, UnExpectedError
	}

	s.cache.Record(ctx, modelID, viewerID, now)
	return &dto.TrackViewDTO{Success: true, Message: "view recorded"}, nil
}

func (s *viewServiceImpl) GetModelViewCount(ctx context.Context, modelID string) (*dto.ViewCountDTO, error) {
	if !validID(modelID, maxEntityIDLen) {
		return nil, ErrParamInvalid
	}
	m, err := s.modelRepo.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrModelNotFound
	}
	return &dto.ViewCountDTO{ViewCount: m.Views}, nil
}
