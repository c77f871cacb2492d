package dto

// FollowStateDTO 关注状态及双方计数
type FollowStateDTO struct {
	IsFollowing    bool  `json:"isFollowing"`
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
}

// SetFollowingReq 幂等设置关注状态
type SetFollowingReq struct {
	Follow *bool `json:"follow" binding:"required"`
}

type LikeStateDTO struct {
	IsLiked bool  `json:"isLiked"`
	Likes   int64 `json:"likes"`
}

type FavoriteStateDTO struct {
	IsFavorite     bool  `json:"isFavorite"`
	FavoritesCount int64 `json:"favoritesCount"`
}
