// Package service 业务服务的组装
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/divyanshudobhal/learn-x/internal/config"
	"github.com/divyanshudobhal/learn-x/internal/repository"
	"github.com/divyanshudobhal/learn-x/internal/service/auth"
	"github.com/divyanshudobhal/learn-x/internal/service/chat"
	"github.com/divyanshudobhal/learn-x/internal/service/oracle"
	"github.com/divyanshudobhal/learn-x/internal/service/storage"
	"github.com/divyanshudobhal/learn-x/internal/service/summary"
	"github.com/divyanshudobhal/learn-x/internal/service/upload"
)

// Services 服务集合
type Services struct {
	Auth   *auth.Service
	Upload *upload.Service
	Chat   *chat.Service

	Config *config.Config
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	ctx := context.Background()

	blob, err := newBlobStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init blob storage: %w", err)
	}

	// AI 不可用时整个平台照常跑：PDF 无摘要，问答接口报错
	var textOracle oracle.Oracle
	if o, err := oracle.New(ctx, &cfg.AI); err != nil {
		log.Printf("Warning: ai oracle unavailable: %v", err)
	} else {
		textOracle = o
	}

	var summarizer upload.Summarizer
	if textOracle != nil {
		summarizer = summary.NewService(textOracle)
	}

	history := chat.NewHistory(redisClient, cfg.Chat.HistorySize, time.Duration(cfg.Chat.HistoryTTL)*time.Hour)

	return &Services{
		Auth:   auth.NewService(repo.Users),
		Upload: upload.NewService(repo.Uploads, blob, summarizer),
		Chat:   chat.NewService(textOracle, repo.AiLogs, history),
		Config: cfg,
	}, nil
}

// newBlobStorage 按配置选择对象存储驱动
func newBlobStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Blob.Driver {
	case string(storage.DriverMinIO), "":
		return storage.NewMinIOStorage(&cfg.Blob.MinIO)
	case string(storage.DriverLocal):
		return storage.NewLocalStorage(cfg.Blob.Local.BasePath, cfg.Blob.Local.URLPrefix)
	default:
		return nil, fmt.Errorf("unsupported blob driver: %s", cfg.Blob.Driver)
	}
}
