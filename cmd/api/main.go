package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"cvBuilder/internal/api"
	"cvBuilder/internal/auth"
	"cvBuilder/internal/config"
	"cvBuilder/internal/cv"
	"cvBuilder/internal/database"
	"cvBuilder/internal/export"
	"cvBuilder/internal/notify"
	"cvBuilder/internal/photo"
	"cvBuilder/internal/storage"
	"cvBuilder/internal/store"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	log.Printf("api bootstrapped with db host=%s port=%d db=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := database.InitDatabase(context.Background(), cfg.Database, logger)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	log.Printf("database connection ready")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	log.Printf("database migrated")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
	defer asynqClient.Close()

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	log.Printf("storage client ready, bucket=%s", cfg.MinIO.Bucket)

	sessions, err := auth.NewSessionService(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		log.Fatalf("init session service: %v", err)
	}

	router := api.NewRouter(cfg, logger)
	api.RegisterRoutes(router, api.Dependencies{
		DB:             db,
		Sessions:       sessions,
		Workspace:      cv.NewWorkspace(),
		Records:        store.NewRecordRepository(store.NewGormStore(db)),
		Publisher:      notify.NewRedisPublisher(redisClient),
		Photos:         photo.NewPipeline(cfg.Photo, logger),
		RateCounter:    redisClient,
		Exporter:       export.NewServiceFromConfig(cfg.Export, logger),
		Enqueuer:       asynqClient,
		Objects:        storageClient,
		Purger:         storageClient,
		WsHandler:      api.NewWsHandler(redisClient, sessions, logger, cfg.API.AllowedOrigins),
		Logger:         logger,
		MaxPhotoBytes:  cfg.Photo.MaxBytes,
		UploadsPerHour: cfg.Photo.UploadsPerHour,
		Export: api.ExportOptions{
			MaxRetry:    cfg.Export.MaxRetry,
			TaskTimeout: cfg.Export.Timeout,
			PresignTTL:  cfg.Export.PresignTTL,
		},
	})

	address := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("api listening on %s", address)
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
