package handler

import (
	"github.com/divyanshudobhal/learn-x/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth   *AuthHandler
	Upload *UploadHandler
	Files  *FilesHandler
	Chat   *ChatHandler
	Admin  *AdminHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:   NewAuthHandler(svc),
		Upload: NewUploadHandler(svc),
		Files:  NewFilesHandler(svc),
		Chat:   NewChatHandler(svc),
		Admin:  NewAdminHandler(svc),
	}
}
