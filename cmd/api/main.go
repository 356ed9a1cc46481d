package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/DeveloperClyde246/ai-interview-portal/internal/cache"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/config"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/database"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/handler"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/intake"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/logger"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/notify"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/repository"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/scoring"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/storage"
	"github.com/DeveloperClyde246/ai-interview-portal/internal/videoai"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

type application struct {
	Logger  *zap.Logger
	Config  *config.Config
	Handler *handler.Handler
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxConns, cfg.DB.MaxLifetime)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	redisClient := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := cache.Ping(ctx, redisClient); err != nil {
		sugar.Warnw("redis unavailable, reminder runs will not be serialized", "err", err)
	}

	repo := repository.NewRepository(pool)

	scorerClient := videoai.NewClient(cfg.Scorer.Endpoint, cfg.Scorer.APIKey)
	aggregator := scoring.NewAggregator(scorerClient, repo, cfg.Scorer.Timeout, log)
	artifacts := storage.NewClient(cfg.Artifact.UploadURL, cfg.Artifact.UploadPreset)
	pipeline := intake.NewPipeline(repo, artifacts, aggregator, log)

	notifyService := notify.NewService(repo, cfg.Reminder.Lookahead, log)
	worker := notify.NewWorker(notifyService, cache.NewLock(redisClient), cfg.Reminder.Interval, log)
	go worker.Start(ctx)

	app := &application{
		Logger: log,
		Config: cfg,
		Handler: &handler.Handler{
			Logger:    log,
			Repo:      repo,
			Intake:    pipeline,
			Notify:    notifyService,
			JwtSecret: cfg.JWT.Secret,
			JwtTTL:    cfg.JWT.TokenTTL,
		},
	}

	if err := app.serve(ctx); err != nil {
		sugar.Fatal(err)
	}
}
