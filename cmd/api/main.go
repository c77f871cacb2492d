package main

import (
	"PrintDungeon/internal/api/config"
	"PrintDungeon/internal/pkg/cron"
	"PrintDungeon/internal/pkg/database"
	"PrintDungeon/internal/pkg/logger"
	"PrintDungeon/internal/pkg/mongo"
	"PrintDungeon/internal/pkg/redis"
	"PrintDungeon/internal/pkg/security"
	"PrintDungeon/internal/pkg/viewcache"
	"PrintDungeon/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg

	// 初始化日志
	logger.InitLogger(cfg.Logstash)
	security.Init(cfg.JWT)

	// 数据库连接
	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}

	// Redis 连接
	if err = redis.InitRedis(cfg.Redis); err != nil {
		log.Error("Fatal error: failed to create redis connection", "err", err)
		panic(err)
	}

	// Mongo 连接，未配置时不提供系统通知
	var mongoDB *mongodrv.Database
	if cfg.Mongo.URL != "" {
		mongoDB, err = mongo.InitMongo(cfg.Mongo)
		if err != nil {
			log.Error("Fatal error: failed to create mongo connection", "err", err)
			panic(err)
		}
	}

	// 浏览去重缓存
	cache, err := viewcache.New(cfg.View, redis.GetRdbClient())
	if err != nil {
		log.Error("Fatal error: failed to create view cache", "err", err)
		panic(err)
	}
	if err = cache.Init(); err != nil {
		log.Error("Fatal error: failed to init view cache", "err", err)
		panic(err)
	}
	defer cache.Shutdown()

	// 依赖注入
	app, err := wire.BuildApplication(db, mongoDB, cache, cfg)
	if err != nil {
		log.Error("Fatal error: failed to create application", "err", err)
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	if err = cron.InitCron(app.CronMgr); err != nil {
		log.Error("Fatal error: failed to start cron jobs", "err", err)
		panic(err)
	}
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Cron Jobs stopping...")
		app.CronMgr.Stop()
		return nil
	})

	// Kafka 消费者
	if app.KafkaManager != nil {
		g.Go(func() error {
			log.Info("Kafka Consumers starting...")
			return app.KafkaManager.Start(ctx)
		})
	}

	// HTTP 服务器
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
		case sig := <-quit:
			log.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server shutdown failed", "err", err)
		}
		if mongoDB != nil {
			if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
				log.Error("Mongo disconnect failed", "err", err)
			}
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("App exited with error", "err", err)
	}
	log.Info("App exited successfully.")
}
