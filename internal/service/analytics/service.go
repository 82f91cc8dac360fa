// Package analytics 提供消息与平台运营统计
package analytics

import (
	"context"
	"fmt"

	"github.com/wadesk/wadesk/internal/model"
	"github.com/wadesk/wadesk/internal/repository"
)

// Service 统计服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建统计服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// ListMessages 列出消息记录
func (s *Service) ListMessages(ctx context.Context, account int, sessionID string) ([]*model.Message, error) {
	return s.repo.Message.ListMessages(account, sessionID)
}

// ListSessions 列出最近活跃会话
func (s *Service) ListSessions(ctx context.Context, account int) ([]repository.SessionSummary, error) {
	return s.repo.Message.GetActiveSessions(account)
}

// Dashboard 客户端仪表盘统计
type Dashboard struct {
	*repository.MessageStats
	ActiveSessions int                            `json:"active_sessions"`
	TotalStudents  int64                          `json:"total_students"`
	WeeklyActivity []repository.DayActivity       `json:"weekly_activity"`
	TopSessions    []repository.SessionSummary    `json:"top_sessions"`
}

// GetDashboard 获取仪表盘统计
func (s *Service) GetDashboard(ctx context.Context, account int, timeRange string) (*Dashboard, error) {
	stats, err := s.repo.Message.GetMessageStats(account, timeRange)
	if err != nil {
		return nil, fmt.Errorf("failed to get message stats: %w", err)
	}

	sessions, err := s.repo.Message.GetActiveSessions(account)
	if err != nil {
		return nil, fmt.Errorf("failed to get active sessions: %w", err)
	}

	totalStudents, err := s.repo.Student.CountStudents()
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	weeklyActivity, err := s.repo.Message.GetWeeklyActivity(account)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly activity: %w", err)
	}

	topSessions := sessions
	if len(topSessions) > 5 {
		topSessions = topSessions[:5]
	}

	return &Dashboard{
		MessageStats:   stats,
		ActiveSessions: len(sessions),
		TotalStudents:  totalStudents,
		WeeklyActivity: weeklyActivity,
		TopSessions:    topSessions,
	}, nil
}

// PlatformSummary 平台级统计（超级管理员视角）
type PlatformSummary struct {
	TotalClients    int64   `json:"total_clients"`
	TotalMessages   int64   `json:"total_messages"`
	TotalStudents   int64   `json:"total_students"`
	TotalRevenue    float64 `json:"total_revenue"`
	PendingPayments float64 `json:"pending_payments"`
}

// GetPlatformSummary 获取平台级统计
func (s *Service) GetPlatformSummary(ctx context.Context) (*PlatformSummary, error) {
	totalClients, err := s.repo.Auth.CountClients()
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	totalMessages, err := s.repo.Message.CountMessages()
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	totalStudents, err := s.repo.Student.CountStudents()
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	totalRevenue, err := s.repo.Payment.SumRevenue()
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	pendingPayments, err := s.repo.Payment.SumPendingDue()
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending payments: %w", err)
	}

	return &PlatformSummary{
		TotalClients:    totalClients,
		TotalMessages:   totalMessages,
		TotalStudents:   totalStudents,
		TotalRevenue:    totalRevenue,
		PendingPayments: pendingPayments,
	}, nil
}
