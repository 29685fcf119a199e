// Package repository 定义数据访问接口
// 接口抽象使上传元数据可以在关系表和 JSON 文件两种后端之间切换
package repository

import (
	"errors"

	"github.com/divyanshudobhal/learn-x/internal/model"
)

// ErrDuplicateFilename 文件名已存在
// filename 是上传记录的主键，重复插入必须被拒绝而不是静默追加
var ErrDuplicateFilename = errors.New("filename already exists")

// UploadRepository 上传元数据访问接口
//
// 所有写操作在同一个存储实例上相互串行：关系后端靠单语句事务，
// JSON 文件后端靠单个互斥锁
type UploadRepository interface {
	// Insert 插入一条记录，文件名冲突时返回 ErrDuplicateFilename
	Insert(rec *model.Upload) error
	// ListAll 返回全部记录，按上传时间倒序
	ListAll() ([]*model.Upload, error)
	// DeleteWhere 删除同时匹配文件名和上传者的至多一条记录
	// 没有匹配时不视为错误，返回是否确实删除了记录
	DeleteWhere(filename, uploadedBy string) (bool, error)
	// RenameAndRetag 原子地更新匹配 (oldName, uploadedBy) 记录的
	// 文件名、标签和 URL，返回是否确实改动了记录
	// 新文件名与现有记录冲突时返回 ErrDuplicateFilename
	RenameAndRetag(oldName, newName, uploadedBy string, newTags model.TagList, newURL string) (bool, error)
}

// AiLogRepository AI 问答日志访问接口，只追加
type AiLogRepository interface {
	// Append 追加一条问答记录
	Append(entry *model.AiLog) error
	// ListAll 返回最近 limit 条记录，按时间倒序；limit <= 0 使用默认值
	ListAll(limit int) ([]*model.AiLog, error)
}

// UserRepository 用户与令牌访问接口
type UserRepository interface {
	CreateUser(user *model.User) error
	GetUserByID(id string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	ListUsers() ([]*model.User, error)

	CreateToken(token *model.AuthToken) error
	GetTokenByValue(token string) (*model.AuthToken, error)
	RevokeToken(id string) error
}

// 确保各实现满足接口
var (
	_ UploadRepository = (*uploadGormRepository)(nil)
	_ UploadRepository = (*UploadJSONRepository)(nil)
	_ AiLogRepository  = (*ailogGormRepository)(nil)
	_ AiLogRepository  = (*AiLogJSONRepository)(nil)
	_ UserRepository   = (*userGormRepository)(nil)
)
