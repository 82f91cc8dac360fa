package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wadesk/wadesk/internal/service"
	"github.com/wadesk/wadesk/internal/service/setting"
)

// SettingHandler 平台设置处理器
type SettingHandler struct {
	svc *service.Services
}

// NewSettingHandler 创建设置处理器
func NewSettingHandler(svc *service.Services) *SettingHandler {
	return &SettingHandler{svc: svc}
}

// Get 获取设置项
func (h *SettingHandler) Get(c *gin.Context) {
	key := c.Param("key")

	result, err := h.svc.Setting.GetSetting(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			NotFound(c, "setting not found")
			return
		}
		Error(c, err)
		return
	}

	Success(c, result)
}

// Set 写入设置项
func (h *SettingHandler) Set(c *gin.Context) {
	key := c.Param("key")

	var req struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Setting.SetSetting(c.Request.Context(), key, req.Value)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}
