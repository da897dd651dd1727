package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sngm3741/feedbackpro/api/internal/config"
	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
	"github.com/sngm3741/feedbackpro/api/internal/infrastructure/kafka"
	mongorepo "github.com/sngm3741/feedbackpro/api/internal/infrastructure/mongo"
	redisguard "github.com/sngm3741/feedbackpro/api/internal/infrastructure/redis"
	"github.com/sngm3741/feedbackpro/api/internal/infrastructure/s3"
	"github.com/sngm3741/feedbackpro/api/internal/logging"
	"github.com/sngm3741/feedbackpro/api/internal/server"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	zapLogger, err := logging.NewZap(cfg.LogLevel)
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗: %v", err)
	}
	logger := logging.New(zapLogger)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(logging.ContextWithLogger(context.Background(), logger), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatal(ctx, "MongoDB 接続に失敗しました", zap.Error(err))
	}

	repo := mongorepo.NewFeedbackRepository(client.Database(cfg.MongoDatabase), cfg.FeedbackCollection)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Warn(ctx, "feedback index creation failed", zap.Error(err))
	}

	s3Client, err := s3.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "s3 client init failed", zap.Error(err))
	}
	blobs := s3.NewBlobStore(s3Client, cfg.S3Bucket)
	if err := blobs.EnsureBucket(ctx); err != nil {
		logger.Warn(ctx, "bucket check failed, uploads may fail", zap.String("bucket", cfg.S3Bucket), zap.Error(err))
	}

	infra := server.Infrastructure{Blobs: blobs}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal(ctx, "redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		infra.Guard = redisguard.NewInflightGuard(rdb, cfg.DeleteLockTTL)
		infra.Closers = append(infra.Closers, rdb.Close)
	} else {
		infra.Guard = application.NewMemoryInflightGuard()
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(kafka.Config{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
		infra.Events = publisher
		infra.Closers = append(infra.Closers, publisher.Close)
	} else {
		logger.Info(ctx, "KAFKA_BROKERS not set, feedback events are not published")
	}

	app := server.New(cfg, logger, client, infra)
	if err := app.Run(); err != nil {
		logger.Fatal(context.Background(), "サーバー起動に失敗", zap.Error(err))
	}
}
