// Package upload 上传管线：本地临时文件 -> 对象存储 -> 标签/摘要 -> 元数据
package upload

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/divyanshudobhal/learn-x/internal/model"
	"github.com/divyanshudobhal/learn-x/internal/repository"
	"github.com/divyanshudobhal/learn-x/internal/service/storage"
	"github.com/divyanshudobhal/learn-x/internal/service/tag"
)

// Summarizer 文档摘要接口
// 摘要失败不是上传失败，所以这里只要一个窄接口方便注入假实现
type Summarizer interface {
	Summarize(ctx context.Context, path string) (string, error)
}

// Service 上传管线
// 串起对象存储、标签引擎、摘要服务和元数据存储；任何一步失败都
// 不自动重试，错误直接报给调用方
type Service struct {
	meta       repository.UploadRepository
	blob       storage.Storage
	summarizer Summarizer // 可为 nil，此时 PDF 不生成摘要
}

// NewService 创建上传管线
func NewService(meta repository.UploadRepository, blob storage.Storage, summarizer Summarizer) *Service {
	return &Service{
		meta:       meta,
		blob:       blob,
		summarizer: summarizer,
	}
}

// validateFilename 校验文件名：非空且不含任何路径成分
func validateFilename(name string) error {
	if name == "" {
		return ErrInvalidFilename
	}
	if strings.ContainsAny(name, "/\\") || name != filepath.Base(name) {
		return ErrInvalidFilename
	}
	if name == "." || name == ".." {
		return ErrInvalidFilename
	}
	return nil
}

// contentTypeFor 按扩展名推断内容类型
func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Ingest 接收一个已落到本地临时路径的文件并完成上传
//
// 步骤：校验文件名 -> 写对象存储 -> 生成标签 -> PDF 生成摘要（可降级）
// -> 写元数据。元数据写入失败时对象已经写入，做一次尽力而为的
// 补偿删除，补偿失败只记日志，原始错误照常上报。
// 临时文件由调用方负责清理，无论成败。
func (s *Service) Ingest(ctx context.Context, tempPath, filename, owner string) (*model.Upload, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(tempPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open temp file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat temp file: %w", err)
	}

	url, err := s.blob.Put(ctx, filename, file, info.Size(), contentTypeFor(filename))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlobStore, err)
	}

	tags := tag.For(filename)

	var summaryText *string
	if strings.EqualFold(filepath.Ext(filename), ".pdf") && s.summarizer != nil {
		text, err := s.summarizer.Summarize(ctx, tempPath)
		if err != nil {
			// 摘要失败降级为无摘要，上传继续
			log.Printf("summary unavailable for %s: %v", filename, err)
		} else if text != "" {
			summaryText = &text
		}
	}

	rec := &model.Upload{
		UploadedBy: owner,
		Filename:   filename,
		URL:        url,
		Tags:       tags,
		Summary:    summaryText,
		UploadedAt: time.Now(),
	}

	if err := s.meta.Insert(rec); err != nil {
		// 文件名冲突时对象键已被同名的已有记录占用，删除会把
		// 旧记录指向的对象一起删掉，此时不做补偿
		if errors.Is(err, repository.ErrDuplicateFilename) {
			return nil, err
		}
		// 对象已写入而元数据没有：尽力删掉对象避免孤儿
		if delErr := s.blob.Delete(ctx, filename); delErr != nil {
			log.Printf("compensating blob delete failed for %s: %v", filename, delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrMetadataStore, err)
	}

	return rec, nil
}

// Rename 重命名一份资料：对象复制+删除、重算标签和 URL、更新元数据
//
// 返回值表示是否真的改了名：(oldName, owner) 没有匹配记录时是
// 无操作成功，返回 false。
func (s *Service) Rename(ctx context.Context, oldName, newName, owner string) (bool, error) {
	if err := validateFilename(newName); err != nil {
		return false, err
	}
	if err := validateFilename(oldName); err != nil {
		return false, err
	}
	if oldName == newName {
		return false, nil
	}

	if err := s.blob.Copy(ctx, oldName, newName); err != nil {
		return false, fmt.Errorf("%w: %v", ErrBlobStore, err)
	}

	newTags := tag.For(newName)
	newURL := s.blob.URL(newName)

	renamed, err := s.meta.RenameAndRetag(oldName, newName, owner, newTags, newURL)
	if err != nil || !renamed {
		// 元数据没动，把复制出来的对象清掉
		if delErr := s.blob.Delete(ctx, newName); delErr != nil {
			log.Printf("compensating blob delete failed for %s: %v", newName, delErr)
		}
	}
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFilename) {
			return false, err
		}
		return false, fmt.Errorf("%w: %v", ErrMetadataStore, err)
	}
	if !renamed {
		return false, nil
	}

	// 元数据已指向新名字，旧对象删除失败只会留下孤儿，记日志
	if err := s.blob.Delete(ctx, oldName); err != nil {
		log.Printf("failed to delete old blob %s after rename: %v", oldName, err)
	}

	return true, nil
}

// Delete 删除一份资料的元数据和对象
//
// 先删元数据（带所有者校验），删到了才去删对象，避免误删别人
// 的文件。重复删除是无操作成功。
func (s *Service) Delete(ctx context.Context, filename, owner string) error {
	if err := validateFilename(filename); err != nil {
		return err
	}

	deleted, err := s.meta.DeleteWhere(filename, owner)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMetadataStore, err)
	}
	if !deleted {
		return nil
	}

	if err := s.blob.Delete(ctx, filename); err != nil {
		// 元数据已删，对象删除失败会留下孤儿对象
		log.Printf("blob delete failed for %s, orphan blob left behind: %v", filename, err)
		return fmt.Errorf("%w: %v", ErrBlobStore, err)
	}
	return nil
}

// ListAll 返回全部上传记录，最新的在前
func (s *Service) ListAll(ctx context.Context) ([]*model.Upload, error) {
	records, err := s.meta.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataStore, err)
	}
	return records, nil
}
