package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/divyanshudobhal/learn-x/internal/service"
)

// AdminHandler 管理端处理器
type AdminHandler struct {
	svc *service.Services
}

// NewAdminHandler 创建管理端处理器
func NewAdminHandler(svc *service.Services) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Overview 平台总览：用户、资料和问答日志的汇总
func (h *AdminHandler) Overview(c *gin.Context) {
	users, err := h.svc.Auth.ListUsers(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	uploads, err := h.svc.Upload.ListAll(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	logs, err := h.svc.Chat.Logs(c.Request.Context(), 20)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{
		"total_users":   len(users),
		"total_files":   len(uploads),
		"users":         users,
		"files":         uploads,
		"recent_ai_use": logs,
	})
}

// ListAiLogs 问答日志，最新的在前
// GET /admin/ai-logs?limit=50
func (h *AdminHandler) ListAiLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	logs, err := h.svc.Chat.Logs(c.Request.Context(), limit)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, logs)
}

// ListUsers 全部用户
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.Auth.ListUsers(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, users)
}
