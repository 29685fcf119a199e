package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/divyanshudobhal/learn-x/internal/middleware"
	"github.com/divyanshudobhal/learn-x/internal/service"
)

// ChatHandler 学习问答处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建问答处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Ask 提一个学习问题
func (h *ChatHandler) Ask(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		Unauthorized(c, "Authentication required")
		return
	}

	var req struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	answer, err := h.svc.Chat.Ask(c.Request.Context(), username, req.Question)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{"question": req.Question, "answer": answer})
}
