package wire

import (
	"PrintDungeon/internal/api"
	"PrintDungeon/internal/api/config"
	"PrintDungeon/internal/api/handler"
	"PrintDungeon/internal/job"
	"PrintDungeon/internal/pkg/cron"
	"PrintDungeon/internal/pkg/kafka"
	"PrintDungeon/internal/pkg/mongo"
	"PrintDungeon/internal/pkg/viewcache"
	"PrintDungeon/internal/repository"
	"PrintDungeon/internal/service"

	"github.com/gin-gonic/gin"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager // 未启用 Kafka 或 Mongo 时为 nil
}

// BuildApplication mongoDB 为 nil 时不挂载通知接口也不启动通知消费者
func BuildApplication(db *gorm.DB, mongoDB *mongodrv.Database, cache viewcache.Cache, cfg *config.Config) (*ApplicationContainer, error) {
	modelRepo := repository.NewModelRepo(db)
	userRepo := repository.NewUserRepo(db)
	claimsRepo := repository.NewClaimsRepo(db)
	relationRepo := repository.NewRelationRepo(db)
	viewBufferRepo := repository.NewViewBufferRepo(db)
	viewerActivityRepo := repository.NewViewerActivityRepo(db)

	viewService := service.NewViewService(viewBufferRepo, modelRepo, cache)
	relationService := service.NewRelationService(relationRepo, modelRepo)
	userRolesService := service.NewUserRolesService(userRepo, claimsRepo)
	analyticsService := service.NewAnalyticsService(cfg.Analytics, viewBufferRepo, viewerActivityRepo, modelRepo)

	handlers := &api.HandlersGroup{
		ViewHandler:      handler.NewViewHandler(viewService),
		RelationHandler:  handler.NewRelationHandler(relationService),
		AdminRoleHandler: handler.NewAdminRoleHandler(userRolesService),
		AnalyticsHandler: handler.NewAnalyticsHandler(analyticsService),
	}

	var kafkaMgr *kafka.ConsumerManager
	if mongoDB != nil {
		sysBoxRepo := mongo.NewSysBoxRepo(mongoDB)
		handlers.SysBoxHandler = handler.NewSysBoxHandler(service.NewSysBoxService(sysBoxRepo))

		if cfg.Kafka.Enable {
			var err error
			kafkaMgr, err = kafka.NewConsumerManager(cfg, modelRepo, sysBoxRepo)
			if err != nil {
				return nil, err
			}
		}
	}

	cronMgr := cron.NewCronManager(
		cfg.Analytics,
		job.NewViewAnalyticsJob(analyticsService),
		job.NewViewPurgeJob(analyticsService),
		job.NewRolesReconcileJob(userRolesService),
	)

	return &ApplicationContainer{
		Router:       api.SetupRouter(cfg, handlers),
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
