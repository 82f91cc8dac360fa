package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// WhatsApp 账号编号（平台接入了两个 WhatsApp 号码）
const (
	AccountPrimary   = 1
	AccountSecondary = 2
)

// 消息类型
const (
	MessageTypeUser = "user"
	MessageTypeAI   = "ai"
)

// MessageBody 消息内容（JSONB 存储）
type MessageBody struct {
	Type      string    `json:"type"` // user, ai
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Value 实现 driver.Valuer 接口
func (b MessageBody) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan 实现 sql.Scanner 接口
func (b *MessageBody) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(data, b)
}

// Message WhatsApp 聊天记录
// Account 区分两个 WhatsApp 账号（原始系统为两张同构表）
type Message struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Account   int         `gorm:"not null;default:1;index" json:"account"`
	SessionID string      `gorm:"size:255;not null;index" json:"session_id"`
	Body      MessageBody `gorm:"type:jsonb;not null" json:"message"`
	ClientID  string      `gorm:"index;size:36" json:"client_id"`
	CreatedAt time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}
