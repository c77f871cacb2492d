package consts

const (
	ViewCooldownKey       = "view:cooldown:"
	UserRolesDirtyKey     = "user:roles:dirty"
	TokenRevokedKeyPrefix = "token:revoked:"
)
