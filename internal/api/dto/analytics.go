package dto

// ViewerActivityDTO 单个访客在某模型上的累计互动
type ViewerActivityDTO struct {
	ModelID          string `json:"modelId"`
	ViewerID         string `json:"viewerId"`
	TotalEngagements int64  `json:"totalEngagements"`
	LastEngagementAt string `json:"lastEngagementAt"`
	UpdatedAt        string `json:"updatedAt"`
}

type ViewerActivityListDTO struct {
	Total int64                `json:"total"`
	Items []*ViewerActivityDTO `json:"items"`
}

// PageReq 通用分页参数
type PageReq struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"page_size,default=20" binding:"min=1,max=100"`
}
