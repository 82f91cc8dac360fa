package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wadesk/wadesk/internal/middleware"
	"github.com/wadesk/wadesk/internal/service"
	"github.com/wadesk/wadesk/internal/service/chat"
)

// ChatHandler 聊天测试控制台处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Send 发送一条消息并返回 AI 回复
func (h *ChatHandler) Send(c *gin.Context) {
	var req chat.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	if req.ClientID == "" {
		req.ClientID, _ = middleware.GetUserID(c)
	}

	resp, err := h.svc.Chat.Send(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, resp)
}
