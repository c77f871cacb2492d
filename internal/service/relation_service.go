package service

import (
	"PrintDungeon/internal/api/dto"
	"PrintDungeon/internal/repository"
	"context"
	"time"
)

// RelationService 关注、点赞、收藏。返回值均在事务提交后重新读取
type RelationService interface {
	ToggleFollow(ctx context.Context, actorID, targetID string) (*dto.FollowStateDTO, error)
	// SetFollowing 幂等设置关注状态
	SetFollowing(ctx context.Context, actorID, targetID string, follow bool) (*dto.FollowStateDTO, error)
	GetFollowStatus(ctx context.Context, actorID, targetID string) (*dto.FollowStateDTO, error)
	ToggleLike(ctx context.Context, actorID, modelID string) (*dto.LikeStateDTO, error)
	GetLikeStatus(ctx context.Context, actorID, modelID string) (*dto.LikeStateDTO, error)
	ToggleFavorite(ctx context.Context, actorID, modelID string) (*dto.FavoriteStateDTO, error)
}

type relationServiceImpl struct {
	relationRepo repository.RelationRepo
	modelRepo    repository.ModelRepo
	now          func() time.Time
}

func NewRelationService(relationRepo repository.RelationRepo, modelRepo repository.ModelRepo) RelationService {
	return &relationServiceImpl{
		relationRepo: relationRepo,
		modelRepo:    modelRepo,
		now:          time.Now,
	}
}

func checkActor(actorID, targetID string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	if !validID(actorID, maxEntityIDLen) || !validID(targetID, maxEntityIDLen) {
		return ErrParamInvalid
	}
	return nil
}

func (s *relationServiceImpl) ToggleFollow(ctx context.Context, actorID, targetID string) (*dto.FollowStateDTO, error) {
	if err := checkActor(actorID, targetID); err != nil {
		return nil, err
	}
	if actorID == targetID {
		return nil, ErrUserFollowSelf
	}

	if _, err := s.relationRepo.ToggleFollow(ctx, actorID, targetID, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.followState(ctx, actorID, targetID)
}

func (s *relationServiceImpl) SetFollowing(ctx context.Context, actorID, targetID string, follow bool) (*dto.FollowStateDTO, error) {
	if err := checkActor(actorID, targetID); err != nil {
		return nil, err
	}
	if actorID == targetID {
		return nil, ErrUserFollowSelf
	}

	if _, err := s.relationRepo.SetFollow(ctx, actorID, targetID, follow, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.followState(ctx, actorID, targetID)
}

// GetFollowStatus 查询自己时返回零值
func (s *relationServiceImpl) GetFollowStatus(ctx context.Context, actorID, targetID string) (*dto.FollowStateDTO, error) {
	if err := checkActor(actorID, targetID); err != nil {
		return nil, err
	}
	if actorID == targetID {
		return &dto.FollowStateDTO{}, nil
	}
	return s.followState(ctx, actorID, targetID)
}

func (s *relationServiceImpl) followState(ctx context.Context, actorID, targetID string) (*dto.FollowStateDTO, error) {
	following, err := s.relationRepo.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	followers, followingCount, err := s.relationRepo.FollowCounts(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowStateDTO{
		IsFollowing:    following,
		FollowersCount: followers,
		FollowingCount: followingCount,
	}, nil
}

func (s *relationServiceImpl) ToggleLike(ctx context.Context, actorID, modelID string) (*dto.LikeStateDTO, error) {
	if err := checkActor(actorID, modelID); err != nil {
		return nil, err
	}

	m, err := s.modelRepo.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if m != nil && m.OwnerID == actorID {
		return nil, ErrLikeOwnModel
	}

	if _, err = s.relationRepo.ToggleLike(ctx, actorID, modelID, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.likeState(ctx, actorID, modelID)
}

func (s *relationServiceImpl) GetLikeStatus(ctx context.Context, actorID, modelID string) (*dto.LikeStateDTO, error) {
	if err := checkActor(actorID, modelID); err != nil {
		return nil, err
	}
	return s.likeState(ctx, actorID, modelID)
}

func (s *relationServiceImpl) likeState(ctx context.Context, actorID, modelID string) (*dto.LikeStateDTO, error) {
	liked, err := s.relationRepo.IsLiked(ctx, actorID, modelID)
	if err != nil {
		return nil, err
	}
	m, err := s.modelRepo.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}

	res := &dto.LikeStateDTO{IsLiked: liked}
	if m != nil {
		res.Likes = m.Likes
	}
	return res, nil
}

func (s *relationServiceImpl) ToggleFavorite(ctx context.Context, actorID, modelID string) (*dto.FavoriteStateDTO, error) {
	if err := checkActor(actorID, modelID); err != nil {
		return nil, err
	}

	if _, err := s.relationRepo.ToggleFavorite(ctx, actorID, modelID, s.now().UTC()); err != nil {
		return nil, err
	}

	favorite, err := s.relationRepo.IsFavorite(ctx, actorID, modelID)
	if err != nil {
		return nil, err
	}
	m, err := s.modelRepo.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}

	res := &dto.FavoriteStateDTO{IsFavorite: favorite}
	if m != nil {
		res.FavoritesCount = m.FavoritesCount
	}
	return res, nil
}
