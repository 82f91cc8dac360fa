package router

import (
	"github.com/gin-gonic/gin"

	"github.com/wadesk/wadesk/internal/handler"
	"github.com/wadesk/wadesk/internal/middleware"
	"github.com/wadesk/wadesk/internal/service"
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
		// Auth 认证
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/refresh", h.Auth.RefreshToken)

			authed := authGroup.Group("", middleware.RequireAuth(svc))
			{
				authed.POST("/logout", h.Auth.Logout)
				authed.GET("/me", h.Auth.GetCurrentUser)
				authed.PUT("/profile", h.Auth.UpdateProfile)
			}
		}

		// 以下均需登录
		api := v1.Group("", middleware.RequireAuth(svc))

		// Document 知识库文档
		docs := api.Group("/documents")
		{
			docs.POST("/upload", h.Document.Upload)
			docs.GET("", h.Document.List)
			docs.GET("/:id", h.Document.Get)
			docs.DELETE("/:id", h.Document.Delete)
		}

		// Chat 测试控制台
		api.POST("/chat", h.Chat.Send)

		// Message 聊天记录
		messages := api.Group("/messages")
		{
			messages.POST("", h.Message.Create)
			messages.GET("", h.Message.List)
			messages.GET("/sessions", h.Message.Sessions)
		}

		// Analytics 统计
		api.GET("/analytics/dashboard", h.Analytics.Dashboard)

		// Student 学生名册
		students := api.Group("/students")
		{
			students.POST("", h.Student.Create)
			students.GET("", h.Student.List)
			students.GET("/:whatsapp_id", h.Student.Get)
			students.PUT("/:whatsapp_id", h.Student.Update)
			students.DELETE("/:whatsapp_id", h.Student.Delete)
		}

		// 超级管理员专属
		admin := api.Group("/admin", middleware.RequireSuperAdmin())
		{
			admin.GET("/summary", h.Analytics.PlatformSummary)
			admin.GET("/clients", h.Auth.ListClients)

			payments := admin.Group("/payments")
			{
				payments.POST("", h.Payment.Create)
				payments.GET("", h.Payment.List)
				payments.PUT("/:id", h.Payment.Update)
				payments.GET("/due/:client_id", h.Payment.ClientDue)
			}

			settings := admin.Group("/settings")
			{
				settings.GET("/:key", h.Setting.Get)
				settings.PUT("/:key", h.Setting.Set)
			}
		}
	}

	return r
}
