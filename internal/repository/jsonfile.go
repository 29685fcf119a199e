package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/divyanshudobhal/learn-x/internal/model"
)

// JSON 文件后端
//
// 磁盘布局与旧版部署兼容：每个存储是一个 JSON 数组文件。
// 读-改-写磁盘在并发写入下不安全，所以每个仓库实例持有一个
// 互斥锁，把所有操作串行化。

// readJSONArray 读取 JSON 数组文件，文件不存在视为空
func readJSONArray(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSONArray 写回 JSON 数组文件
// 先写临时文件再 rename，避免写一半的文件被读到
func writeJSONArray(path string, in interface{}) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// UploadJSONRepository 上传元数据的 JSON 文件实现
type UploadJSONRepository struct {
	mu   sync.Mutex
	path string
}

// NewUploadJSONRepository 创建上传元数据仓库（jsonfile 后端）
func NewUploadJSONRepository(dataDir string) (*UploadJSONRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &UploadJSONRepository{path: filepath.Join(dataDir, "uploads.json")}, nil
}

func (r *UploadJSONRepository) load() ([]*model.Upload, error) {
	var uploads []*model.Upload
	if err := readJSONArray(r.path, &uploads); err != nil {
		return nil, err
	}
	return uploads, nil
}

// Insert 插入一条记录
func (r *UploadJSONRepository) Insert(rec *model.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	uploads, err := r.load()
	if err != nil {
		return err
	}

	for _, u := range uploads {
		if u.Filename == rec.Filename {
			return ErrDuplicateFilename
		}
	}

	if rec.UploadedAt.IsZero() {
		rec.UploadedAt = time.Now()
	}
	uploads = append(uploads, rec)
	return writeJSONArray(r.path, uploads)
}

// ListAll 返回全部记录，最新的在前
func (r *UploadJSONRepository) ListAll() ([]*model.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uploads, err := r.load()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(uploads, func(i, j int) bool {
		return uploads[i].UploadedAt.After(uploads[j].UploadedAt)
	})
	return uploads, nil
}

// DeleteWhere 删除同时匹配文件名和上传者的至多一条记录，幂等
func (r *UploadJSONRepository) DeleteWhere(filename, uploadedBy string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uploads, err := r.load()
	if err != nil {
		return false, err
	}

	for i, u := range uploads {
		if u.Filename == filename && u.UploadedBy == uploadedBy {
			uploads = append(uploads[:i], uploads[i+1:]...)
			return true, writeJSONArray(r.path, uploads)
		}
	}
	return false, nil
}

// RenameAndRetag 更新匹配记录的文件名、标签和 URL
func (r *UploadJSONRepository) RenameAndRetag(oldName, newName, uploadedBy string, newTags model.TagList, newURL string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uploads, err := r.load()
	if err != nil {
		return false, err
	}

	for _, u := range uploads {
		if u.Filename == newName {
			return false, ErrDuplicateFilename
		}
	}

	for _, u := range uploads {
		if u.Filename == oldName && u.UploadedBy == uploadedBy {
			u.Filename = newName
			u.Tags = newTags
			u.URL = newURL
			return true, writeJSONArray(r.path, uploads)
		}
	}
	return false, nil
}

// AiLogJSONRepository AI 问答日志的 JSON 文件实现
type AiLogJSONRepository struct {
	mu   sync.Mutex
	path string
}

// NewAiLogJSONRepository 创建 AI 日志仓库（jsonfile 后端）
func NewAiLogJSONRepository(dataDir string) (*AiLogJSONRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &AiLogJSONRepository{path: filepath.Join(dataDir, "ai_logs.json")}, nil
}

// Append 追加一条问答记录
func (r *AiLogJSONRepository) Append(entry *model.AiLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var logs []*model.AiLog
	if err := readJSONArray(r.path, &logs); err != nil {
		return err
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	logs = append(logs, entry)
	return writeJSONArray(r.path, logs)
}

// ListAll 返回最近 limit 条记录，最新的在前
func (r *AiLogJSONRepository) ListAll(limit int) ([]*model.AiLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = defaultLogLimit
	}

	var logs []*model.AiLog
	if err := readJSONArray(r.path, &logs); err != nil {
		return nil, err
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}
