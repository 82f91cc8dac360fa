// Package testutil 提供测试辅助工具
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/wadesk/wadesk/internal/model"
)

// NewTestUser 创建测试用户
func NewTestUser(role string) *model.User {
	return &model.User{
		ID:           uuid.New().String(),
		Email:        "test@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		IsActive:     true,
	}
}

// NewTestDocument 创建测试文档
func NewTestDocument(content string) *model.Document {
	return &model.Document{
		ID:       uuid.New().String(),
		Title:    "test-document",
		Filename: "test-document.txt",
		Content:  content,
	}
}

// NewTestMessage 创建测试消息
func NewTestMessage(account int, sessionID, msgType, content string) *model.Message {
	return &model.Message{
		Account:   account,
		SessionID: sessionID,
		Body: model.MessageBody{
			Type:      msgType,
			Content:   content,
			Timestamp: time.Now(),
		},
	}
}
