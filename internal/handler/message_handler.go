package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wadesk/wadesk/internal/model"
	"github.com/wadesk/wadesk/internal/service"
	"github.com/wadesk/wadesk/internal/service/chat"
)

// MessageHandler 聊天记录处理器
type MessageHandler struct {
	svc *service.Services
}

// NewMessageHandler 创建消息处理器
func NewMessageHandler(svc *service.Services) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// accountParam 解析 account 查询参数，默认主账号
func accountParam(c *gin.Context) int {
	account, err := strconv.Atoi(c.DefaultQuery("account", "1"))
	if err != nil || (account != model.AccountPrimary && account != model.AccountSecondary) {
		return model.AccountPrimary
	}
	return account
}

// Create 写入一条外部渠道消息
func (h *MessageHandler) Create(c *gin.Context) {
	var req chat.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	msg, err := h.svc.Chat.Record(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, msg)
}

// List 列出消息记录
func (h *MessageHandler) List(c *gin.Context) {
	account := accountParam(c)
	sessionID := c.Query("session_id")

	msgs, err := h.svc.Analytics.ListMessages(c.Request.Context(), account, sessionID)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, msgs)
}

// Sessions 列出最近活跃会话
func (h *MessageHandler) Sessions(c *gin.Context) {
	account := accountParam(c)

	sessions, err := h.svc.Analytics.ListSessions(c.Request.Context(), account)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, sessions)
}
