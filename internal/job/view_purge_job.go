package job

import (
	"PrintDungeon/internal/pkg/logger"
	"PrintDungeon/internal/service"
	log "log/slog"
)

type ViewPurgeJob struct {
	analyticsSvc service.AnalyticsService
}

func NewViewPurgeJob(analyticsSvc service.AnalyticsService) *ViewPurgeJob {
	return &ViewPurgeJob{analyticsSvc: analyticsSvc}
}

func (s *ViewPurgeJob) Run() {
	ctx := logger.NewJobContext("job-purge")
	if _, err := s.analyticsSvc.PurgeProcessedViews(ctx); err != nil {
		log.ErrorContext(ctx, "purge view buffer error", "err", err)
	}
}
