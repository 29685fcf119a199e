package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/divyanshudobhal/learn-x/internal/config"
)

// Repositories 仓库集合，用于统一管理所有仓库
type Repositories struct {
	Uploads UploadRepository
	AiLogs  AiLogRepository
	Users   UserRepository
}

// NewRepositories 根据配置创建所有仓库
// metadata.backend 只切换上传元数据和 AI 日志；用户账号始终走关系库
func NewRepositories(db *gorm.DB, cfg *config.Config) (*Repositories, error) {
	repos := &Repositories{
		Users: NewUserGormRepository(db),
	}

	switch cfg.Metadata.Backend {
	case "postgres", "":
		repos.Uploads = NewUploadGormRepository(db)
		repos.AiLogs = NewAiLogGormRepository(db)

	case "jsonfile":
		uploads, err := NewUploadJSONRepository(cfg.Metadata.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to init upload store: %w", err)
		}
		ailogs, err := NewAiLogJSONRepository(cfg.Metadata.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to init ai log store: %w", err)
		}
		repos.Uploads = uploads
		repos.AiLogs = ailogs

	default:
		return nil, fmt.Errorf("unsupported metadata backend: %s", cfg.Metadata.Backend)
	}

	return repos, nil
}
