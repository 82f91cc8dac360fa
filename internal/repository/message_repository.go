package repository

import (
	"time"

	"github.com/wadesk/wadesk/internal/model"
	"gorm.io/gorm"
)

// MessageRepository 聊天记录数据访问
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息仓库
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// CreateMessage 创建消息
func (r *MessageRepository) CreateMessage(msg *model.Message) error {
	return r.db.Create(msg).Error
}

// ListMessages 列出消息
// 指定 sessionID 时按时间正序返回整个会话，否则返回最近 100 条
func (r *MessageRepository) ListMessages(account int, sessionID string) ([]*model.Message, error) {
	var msgs []*model.Message
	query := r.db.Where("account = ?", account)
	if sessionID != "" {
		err := query.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&msgs).Error
		return msgs, err
	}
	err := query.Order("created_at DESC").Limit(100).Find(&msgs).Error
	return msgs, err
}

// SessionSummary 活跃会话摘要
type SessionSummary struct {
	SessionID    string    `json:"session_id"`
	MessageCount int64     `json:"message_count"`
	LastActivity time.Time `json:"last_activity"`
}

// GetActiveSessions 获取最近活跃的会话
func (r *MessageRepository) GetActiveSessions(account int) ([]SessionSummary, error) {
	var sessions []SessionSummary
	err := r.db.Model(&model.Message{}).
		Select("session_id, count(*) AS message_count, max(created_at) AS last_activity").
		Where("account = ?", account).
		Group("session_id").
		Order("max(created_at) DESC").
		Limit(10).
		Scan(&sessions).Error
	return sessions, err
}

// DailyCount 按天统计
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// MessageStats 消息统计
type MessageStats struct {
	TotalMessages   int64        `json:"total_messages"`
	DailyMessages   []DailyCount `json:"daily_messages"`
	WeeklyMessages  int64        `json:"weekly_messages"`
	MonthlyMessages int64        `json:"monthly_messages"`
}

// 统计时间范围映射，防止区间字符串注入
var statsIntervals = map[string]string{
	"1day":    "1 day",
	"7days":   "7 days",
	"30days":  "30 days",
	"6months": "6 months",
	"1year":   "1 year",
}

// GetMessageStats 获取消息统计
func (r *MessageRepository) GetMessageStats(account int, timeRange string) (*MessageStats, error) {
	interval, ok := statsIntervals[timeRange]
	if !ok {
		interval = "7 days"
	}

	stats := &MessageStats{}

	err := r.db.Raw(
		"SELECT count(*) FROM messages WHERE account = ? AND created_at >= current_date - interval '"+interval+"'",
		account,
	).Scan(&stats.TotalMessages).Error
	if err != nil {
		return nil, err
	}

	if err := r.db.Raw(
		"SELECT count(*) FROM messages WHERE account = ? AND created_at >= current_date - interval '7 days'",
		account,
	).Scan(&stats.WeeklyMessages).Error; err != nil {
		return nil, err
	}

	if err := r.db.Raw(
		"SELECT count(*) FROM messages WHERE account = ? AND created_at >= current_date - interval '30 days'",
		account,
	).Scan(&stats.MonthlyMessages).Error; err != nil {
		return nil, err
	}

	err = r.db.Raw(
		`SELECT date_trunc('day', created_at)::date AS date, count(*) AS count
		 FROM messages
		 WHERE account = ? AND created_at >= current_date - interval '`+interval+`'
		 GROUP BY date_trunc('day', created_at)
		 ORDER BY date_trunc('day', created_at)`,
		account,
	).Scan(&stats.DailyMessages).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// DayActivity 按星期几统计
type DayActivity struct {
	Day      string `json:"day"`
	Messages int64  `json:"messages"`
}

// GetWeeklyActivity 获取近 7 天按星期几的消息分布
// 缺失的天补零，顺序固定为周日到周六
func (r *MessageRepository) GetWeeklyActivity(account int) ([]DayActivity, error) {
	var rows []struct {
		Dow      int
		Messages int64
	}
	err := r.db.Raw(
		`SELECT extract(dow FROM created_at)::int AS dow, count(*) AS messages
		 FROM messages
		 WHERE account = ? AND created_at >= current_date - interval '7 days'
		 GROUP BY extract(dow FROM created_at)
		 ORDER BY extract(dow FROM created_at)`,
		account,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Dow] = row.Messages
	}

	activity := make([]DayActivity, 0, len(days))
	for dow, day := range days {
		activity = append(activity, DayActivity{Day: day, Messages: counts[dow]})
	}
	return activity, nil
}

// CountMessages 统计消息总量
func (r *MessageRepository) CountMessages() (int64, error) {
	var count int64
	err := r.db.Model(&model.Message{}).Count(&count).Error
	return count, err
}

// CountAIMessages 统计 AI 回复数量（计费依据）
func (r *MessageRepository) CountAIMessages(clientID string) (int64, error) {
	var count int64
	query := r.db.Model(&model.Message{}).Where("body->>'type' = ?", model.MessageTypeAI)
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	err := query.Count(&count).Error
	return count, err
}
