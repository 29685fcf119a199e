package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/divyanshudobhal/learn-x/internal/model"
)

// uploadGormRepository 上传元数据的关系表实现
// 每个操作都是单条语句或单个事务，写操作间的串行化由数据库保证
type uploadGormRepository struct {
	db *gorm.DB
}

// NewUploadGormRepository 创建上传元数据仓库（postgres 后端）
func NewUploadGormRepository(db *gorm.DB) UploadRepository {
	return &uploadGormRepository{db: db}
}

// Insert 插入一条记录
func (r *uploadGormRepository) Insert(rec *model.Upload) error {
	if rec.UploadedAt.IsZero() {
		rec.UploadedAt = time.Now()
	}
	err := r.db.Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateFilename
	}
	return err
}

// ListAll 返回全部记录，最新的在前
func (r *uploadGormRepository) ListAll() ([]*model.Upload, error) {
	var uploads []*model.Upload
	err := r.db.Order("uploaded_at DESC").Find(&uploads).Error
	if err != nil {
		return nil, err
	}
	return uploads, nil
}

// DeleteWhere 删除同时匹配文件名和上传者的记录，幂等
func (r *uploadGormRepository) DeleteWhere(filename, uploadedBy string) (bool, error) {
	result := r.db.Where("filename = ? AND uploaded_by = ?", filename, uploadedBy).
		Delete(&model.Upload{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RenameAndRetag 在一个事务内更新文件名、标签和 URL
func (r *uploadGormRepository) RenameAndRetag(oldName, newName, uploadedBy string, newTags model.TagList, newURL string) (bool, error) {
	var renamed bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Upload{}).
			Where("filename = ? AND uploaded_by = ?", oldName, uploadedBy).
			Updates(map[string]interface{}{
				"filename": newName,
				"tags":     newTags,
				"url":      newURL,
			})
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateFilename
		}
		if result.Error != nil {
			return result.Error
		}
		renamed = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return renamed, nil
}
