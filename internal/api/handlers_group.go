package api

import "PrintDungeon/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例，SysBoxHandler 在未配置 Mongo 时为 nil
type HandlersGroup struct {
	ViewHandler      *handler.ViewHandler
	RelationHandler  *handler.RelationHandler
	AdminRoleHandler *handler.AdminRoleHandler
	AnalyticsHandler *handler.AnalyticsHandler
	SysBoxHandler    *handler.SysBoxHandler
}
