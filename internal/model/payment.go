package model

import "time"

// 账单状态
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// Payment 按量计费账单（按客户端、按月）
type Payment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ClientID       string    `gorm:"index;size:36;not null" json:"client_id"`
	Month          string    `gorm:"size:20;not null" json:"month"`
	Year           int       `gorm:"not null" json:"year"`
	AIMessageCount int       `gorm:"default:0;not null" json:"ai_message_count"`
	RatePerMessage float64   `gorm:"type:decimal(10,2);default:1.50;not null" json:"rate_per_message"`
	TotalDue       float64   `gorm:"type:decimal(10,2);default:0;not null" json:"total_due"`
	AmountPaid     float64   `gorm:"type:decimal(10,2);default:0;not null" json:"amount_paid"`
	Status         string    `gorm:"size:20;default:pending;not null" json:"status"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}
