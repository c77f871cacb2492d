package job

import (
	"PrintDungeon/internal/pkg/logger"
	"PrintDungeon/internal/service"
	log "log/slog"
)

// ViewAnalyticsJob 汇总浏览缓冲区，失败留给下一次调度
type ViewAnalyticsJob struct {
	analyticsSvc service.AnalyticsService
}

func NewViewAnalyticsJob(analyticsSvc service.AnalyticsService) *ViewAnalyticsJob {
	return &ViewAnalyticsJob{analyticsSvc: analyticsSvc}
}

func (s *ViewAnalyticsJob) Run() {
	ctx := logger.NewJobContext("job-analytics")
	if _, err := s.analyticsSvc.ProcessViewBuffer(ctx); err != nil {
		log.ErrorContext(ctx, "process view buffer error", "err", err)
	}
}
