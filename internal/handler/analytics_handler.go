package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wadesk/wadesk/internal/service"
)

// AnalyticsHandler 统计处理器
type AnalyticsHandler struct {
	svc *service.Services
}

// NewAnalyticsHandler 创建统计处理器
func NewAnalyticsHandler(svc *service.Services) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Dashboard 客户端仪表盘统计
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	account := accountParam(c)
	timeRange := c.DefaultQuery("range", "7days")

	dashboard, err := h.svc.Analytics.GetDashboard(c.Request.Context(), account, timeRange)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, dashboard)
}

// PlatformSummary 平台级统计（仅超级管理员）
func (h *AnalyticsHandler) PlatformSummary(c *gin.Context) {
	summary, err := h.svc.Analytics.GetPlatformSummary(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, summary)
}
