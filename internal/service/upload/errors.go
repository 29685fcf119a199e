package upload

import "errors"

var (
	// ErrInvalidFilename 文件名为空或带路径成分
	ErrInvalidFilename = errors.New("invalid filename")
	// ErrBlobStore 对象存储写入/删除/复制失败，可由调用方整体重试
	ErrBlobStore = errors.New("blob store operation failed")
	// ErrMetadataStore 元数据存储不可用或拒绝写入
	ErrMetadataStore = errors.New("metadata store operation failed")
)
