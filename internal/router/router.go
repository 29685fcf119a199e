// Package router HTTP 路由
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/divyanshudobhal/learn-x/internal/handler"
	"github.com/divyanshudobhal/learn-x/internal/middleware"
	"github.com/divyanshudobhal/learn-x/internal/model"
	"github.com/divyanshudobhal/learn-x/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 公开的认证接口
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/refresh", h.Auth.RefreshToken)
		}

		// 登录后的接口
		authed := v1.Group("")
		authed.Use(middleware.RequireAuth(svc.Auth))
		{
			authed.POST("/auth/logout", h.Auth.Logout)
			authed.GET("/auth/me", h.Auth.Me)

			// 资料浏览（全角色）
			authed.GET("/files", h.Files.ListFiles)
			authed.GET("/files/:filename/url", h.Files.GetFileURL)

			// 学习问答
			authed.POST("/chat", h.Chat.Ask)

			// 资料管理（仅教师）
			uploads := authed.Group("/uploads")
			uploads.Use(middleware.RequireRole(model.RoleTeacher))
			{
				uploads.POST("", h.Upload.UploadFile)
				uploads.GET("", h.Upload.MyFiles)
				uploads.POST("/:filename/rename", h.Upload.RenameFile)
				uploads.DELETE("/:filename", h.Upload.DeleteFile)
			}

			// 管理端（仅管理员）
			admin := authed.Group("/admin")
			admin.Use(middleware.RequireRole(model.RoleAdmin))
			{
				admin.GET("/overview", h.Admin.Overview)
				admin.GET("/ai-logs", h.Admin.ListAiLogs)
				admin.GET("/users", h.Admin.ListUsers)
			}
		}
	}

	return r
}
