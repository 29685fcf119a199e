package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/divyanshudobhal/learn-x/internal/service"
	"github.com/divyanshudobhal/learn-x/internal/service/query"
)

// FilesHandler 资料浏览处理器（全角色）
type FilesHandler struct {
	svc *service.Services
}

// NewFilesHandler 创建资料浏览处理器
func NewFilesHandler(svc *service.Services) *FilesHandler {
	return &FilesHandler{svc: svc}
}

// ListFiles 列出资料，支持关键词搜索和类型过滤
// GET /files?q=python&type=pdf
func (h *FilesHandler) ListFiles(c *gin.Context) {
	uploads, err := h.svc.Upload.ListAll(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	uploads = query.Search(uploads, c.Query("q"))
	uploads = query.FilterByType(uploads, c.Query("type"))

	Success(c, uploads)
}

// GetFileURL 返回某个资料的下载地址
func (h *FilesHandler) GetFileURL(c *gin.Context) {
	filename := c.Param("filename")

	uploads, err := h.svc.Upload.ListAll(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	for _, u := range uploads {
		if u.Filename == filename {
			Success(c, gin.H{"filename": u.Filename, "url": u.URL})
			return
		}
	}

	NotFound(c, "file not found")
}
