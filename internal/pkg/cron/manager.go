package cron

import (
	"PrintDungeon/internal/api/config"
	"PrintDungeon/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

const (
	defaultBatchSchedule     = "@every 5m"
	defaultPurgeSchedule     = "0 0 2 * * *"
	defaultReconcileSchedule = "@every 10m"
)

type Manager struct {
	engine            *cron.Cron
	cfg               config.AnalyticsConfig
	viewAnalyticsJob  *job.ViewAnalyticsJob
	viewPurgeJob      *job.ViewPurgeJob
	rolesReconcileJob *job.RolesReconcileJob
}

func NewCronManager(
	cfg config.AnalyticsConfig,
	viewAnalyticsJob *job.ViewAnalyticsJob,
	viewPurgeJob *job.ViewPurgeJob,
	rolesReconcileJob *job.RolesReconcileJob,
) *Manager {
	return &Manager{
		// 上一轮未结束时跳过本轮，批处理不会与自己并发
		engine:            cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		cfg:               cfg,
		viewAnalyticsJob:  viewAnalyticsJob,
		viewPurgeJob:      viewPurgeJob,
		rolesReconcileJob: rolesReconcileJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(orDefault(s.cfg.BatchSchedule, defaultBatchSchedule), s.viewAnalyticsJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(orDefault(s.cfg.PurgeSchedule, defaultPurgeSchedule), s.viewPurgeJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(orDefault(s.cfg.ReconcileRoles, defaultReconcileSchedule), s.rolesReconcileJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 停止调度并等待正在运行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
