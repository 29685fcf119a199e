package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/divyanshudobhal/learn-x/internal/model"
)

// defaultLogLimit 默认返回的日志条数
const defaultLogLimit = 100

// ailogGormRepository AI 问答日志的关系表实现
type ailogGormRepository struct {
	db *gorm.DB
}

// NewAiLogGormRepository 创建 AI 日志仓库（postgres 后端）
func NewAiLogGormRepository(db *gorm.DB) AiLogRepository {
	return &ailogGormRepository{db: db}
}

// Append 追加一条问答记录
func (r *ailogGormRepository) Append(entry *model.AiLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.db.Create(entry).Error
}

// ListAll 返回最近 limit 条记录，最新的在前
func (r *ailogGormRepository) ListAll(limit int) ([]*model.AiLog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	var logs []*model.AiLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
