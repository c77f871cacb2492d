package job

import (
	"PrintDungeon/internal/pkg/consts"
	"PrintDungeon/internal/pkg/logger"
	"PrintDungeon/internal/pkg/redis"
	"PrintDungeon/internal/service"
	log "log/slog"
)

// RolesReconcileJob 重放镜像失败的角色写入，claims 为准
type RolesReconcileJob struct {
	rolesSvc service.UserRolesService
}

func NewRolesReconcileJob(rolesSvc service.UserRolesService) *RolesReconcileJob {
	return &RolesReconcileJob{rolesSvc: rolesSvc}
}

func (s *RolesReconcileJob) Run() {
	ctx := logger.NewJobContext("job-roles")

	processingKey := consts.UserRolesDirtyKey + ":processing"
	// 上次未处理完的集合优先
	pending, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get roles processing set error", "err", err)
		return
	}
	if len(pending) == 0 {
		// 脏集合为空时 Rename 返回错误，直接结束
		if err = redis.Rename(ctx, consts.UserRolesDirtyKey, processingKey); err != nil {
			return
		}
		if pending, err = redis.GetSet(ctx, processingKey); err != nil {
			log.ErrorContext(ctx, "get roles dirty set error", "err", err)
			return
		}
	}

	var failed []interface{}
	for _, uid := range pending {
		if err = s.rolesSvc.ReconcileRoles(ctx, uid); err != nil {
			log.ErrorContext(ctx, "reconcile roles error", "uid", uid, "err", err)
			failed = append(failed, uid)
		}
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete roles processing key error", "err", err)
		return
	}
	if len(failed) > 0 {
		if err = redis.SAdd(ctx, consts.UserRolesDirtyKey, failed...); err != nil {
			log.ErrorContext(ctx, "requeue dirty roles error", "err", err)
		}
	}
	log.InfoContext(ctx, "roles reconciled", "total", len(pending), "failed", len(failed))
}
