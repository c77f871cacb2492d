package dto

// SysBoxDTO 系统通知返回对象
type SysBoxDTO struct {
	ID        string         `json:"id"`
	SenderID  string         `json:"sender_id"`
	Type      int8           `json:"type"`      // 1-模型被点赞, 5-被关注
	TargetID  string         `json:"target_id"` // 关联的模型ID
	Content   string         `json:"content"`
	Payload   map[string]any `json:"payload"`
	IsRead    bool           `json:"is_read"`
	CreatedAt string         `json:"created_at"`
}

// SysBoxUnreadDTO 未读数返回
type SysBoxUnreadDTO struct {
	UnreadCount int64 `json:"unread_count"`
}

type SysBoxMarkReadReq struct {
	ID string `json:"id" binding:"required"`
}
