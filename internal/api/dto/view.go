package dto

// TrackViewReq 浏览上报请求，登录用户忽略 ViewerID
type TrackViewReq struct {
	ViewerID string `json:"viewerId" binding:"omitempty,max=128,excludes=_"`
}

// TrackViewDTO 浏览上报结果
type TrackViewDTO struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

type ViewCountDTO struct {
	ViewCount int64 `json:"viewCount"`
}
