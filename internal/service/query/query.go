// Package query 对上传元数据的当前快照做搜索和类型过滤
// 所有函数都不修改输入，返回的切片保持原有顺序，可以随意组合
package query

import (
	"strings"

	"github.com/divyanshudobhal/learn-x/internal/model"
)

// 文件类型到扩展名族的映射
var typeExtensions = map[string][]string{
	"pdf":   {".pdf"},
	"image": {".jpg", ".jpeg", ".png", ".gif"},
	"video": {".mp4", ".mov", ".avi", ".mkv"},
	"doc":   {".doc", ".docx", ".txt", ".ppt", ".pptx", ".xls", ".xlsx"},
}

// Search 大小写不敏感的子串搜索，匹配文件名或任意标签
// 空查询原样返回输入
func Search(records []*model.Upload, q string) []*model.Upload {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return records
	}

	filtered := make([]*model.Upload, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Filename), q) {
			filtered = append(filtered, rec)
			continue
		}
		for _, t := range rec.Tags {
			if strings.Contains(strings.ToLower(t), q) {
				filtered = append(filtered, rec)
				break
			}
		}
	}
	return filtered
}

// FilterByType 按扩展名族过滤
// kind 取 all/pdf/image/video/doc/other；"all"、"other" 和未知的
// kind 一律放行（宽容回退，不是错误）
func FilterByType(records []*model.Upload, kind string) []*model.Upload {
	kind = strings.ToLower(strings.TrimSpace(kind))

	exts, ok := typeExtensions[kind]
	if !ok {
		return records
	}

	filtered := make([]*model.Upload, 0, len(records))
	for _, rec := range records {
		name := strings.ToLower(rec.Filename)
		for _, ext := range exts {
			if strings.HasSuffix(name, ext) {
				filtered = append(filtered, rec)
				break
			}
		}
	}
	return filtered
}

// ByOwner 只保留指定上传者的记录
func ByOwner(records []*model.Upload, owner string) []*model.Upload {
	filtered := make([]*model.Upload, 0, len(records))
	for _, rec := range records {
		if rec.UploadedBy == owner {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
