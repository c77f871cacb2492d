package dto

// SetUserRoleReq 管理员设置角色标记，Enable 必须显式给出
type SetUserRoleReq struct {
	UID    string `json:"uid" binding:"required,max=64"`
	Role   string `json:"role" binding:"required,max=64"`
	Enable *bool  `json:"enable" binding:"required"`
}

type SetUserRoleDTO struct {
	Status string `json:"status"`
}

// UserRolesDTO 身份 claims 与用户资料中镜像的角色
type UserRolesDTO struct {
	UserID string          `json:"uid"`
	Claims map[string]bool `json:"claims"`
	Roles  []string        `json:"roles"`
}
