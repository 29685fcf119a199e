package handler

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/divyanshudobhal/learn-x/internal/middleware"
	"github.com/divyanshudobhal/learn-x/internal/service"
	"github.com/divyanshudobhal/learn-x/internal/service/query"
)

// UploadHandler 资料上传处理器（教师侧）
type UploadHandler struct {
	svc *service.Services
}

// NewUploadHandler 创建上传处理器
func NewUploadHandler(svc *service.Services) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// UploadFile 上传学习资料
// 文件先落到本地临时目录再进管线，临时文件无论成败都会清理
func (h *UploadHandler) UploadFile(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required: "+err.Error())
		return
	}

	maxSize := int64(h.svc.Config.Upload.MaxSizeMB) * 1024 * 1024
	if maxSize > 0 && fileHeader.Size > maxSize {
		BadRequest(c, "file too large")
		return
	}

	tempDir := h.svc.Config.Upload.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		Error(c, err)
		return
	}

	tempPath := filepath.Join(tempDir, uuid.New().String())
	if err := c.SaveUploadedFile(fileHeader, tempPath); err != nil {
		Error(c, err)
		return
	}
	defer os.Remove(tempPath)

	rec, err := h.svc.Upload.Ingest(c.Request.Context(), tempPath, fileHeader.Filename, username)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, rec)
}

// MyFiles 当前教师上传的资料
func (h *UploadHandler) MyFiles(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	uploads, err := h.svc.Upload.ListAll(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, query.ByOwner(uploads, username))
}

// RenameFile 重命名资料
func (h *UploadHandler) RenameFile(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	var req struct {
		NewName string `json:"new_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	oldName := c.Param("filename")
	renamed, err := h.svc.Upload.Rename(c.Request.Context(), oldName, req.NewName, username)
	if err != nil {
		Error(c, err)
		return
	}
	if !renamed {
		NotFound(c, "file not found")
		return
	}

	Success(c, gin.H{"renamed": true, "filename": req.NewName})
}

// DeleteFile 删除资料
func (h *UploadHandler) DeleteFile(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	filename := c.Param("filename")
	if err := h.svc.Upload.Delete(c.Request.Context(), filename, username); err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{"deleted": true})
}
