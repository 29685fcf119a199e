// Package storage 对象存储适配层
package storage

import (
	"context"
	"io"
)

// Storage 对象存储接口
// 上传管线只依赖这四个操作；所有调用都应由调用方的 ctx 限定超时
type Storage interface {
	// Put 按 key 写入对象，返回公开访问 URL
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	// Delete 删除对象，对不存在的 key 幂等
	Delete(ctx context.Context, key string) error
	// Copy 把 src 复制到 dst（重命名 = Copy + Delete）
	Copy(ctx context.Context, src, dst string) error
	// URL 计算 key 的公开访问 URL，不发起网络请求
	URL(key string) string
}

// Driver 存储驱动类型
type Driver string

const (
	DriverMinIO Driver = "minio"
	DriverLocal Driver = "local"
)
