package handler

import (
	"github.com/wadesk/wadesk/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth      *AuthHandler
	Document  *DocumentHandler
	Chat      *ChatHandler
	Message   *MessageHandler
	Student   *StudentHandler
	Payment   *PaymentHandler
	Analytics *AnalyticsHandler
	Setting   *SettingHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svc),
		Document:  NewDocumentHandler(svc),
		Chat:      NewChatHandler(svc),
		Message:   NewMessageHandler(svc),
		Student:   NewStudentHandler(svc),
		Payment:   NewPaymentHandler(svc),
		Analytics: NewAnalyticsHandler(svc),
		Setting:   NewSettingHandler(svc),
	}
}
