package consts

const (
	RoleAdmin = "admin"
)

const (
	// NoticeTypeModelLike 模型被点赞
	NoticeTypeModelLike int8 = 1
	// NoticeTypeFollow 被关注
	NoticeTypeFollow int8 = 5
)

const (
	ContextUserID = "user_id"
	ContextRoles  = "roles"
)
