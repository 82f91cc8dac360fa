// Package payment 提供按量计费账单管理
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/wadesk/wadesk/internal/model"
	"github.com/wadesk/wadesk/internal/repository"
)

// ErrPaymentNotFound 账单不存在
var ErrPaymentNotFound = errors.New("payment not found")

// Service 账单服务
type Service struct {
	repo        *repository.Repositories
	defaultRate float64
}

// NewService 创建账单服务
func NewService(repo *repository.Repositories, defaultRate float64) *Service {
	if defaultRate <= 0 {
		defaultRate = 1.50
	}
	return &Service{repo: repo, defaultRate: defaultRate}
}

// CreatePaymentRequest 创建账单请求
type CreatePaymentRequest struct {
	ClientID       string  `json:"client_id" binding:"required"`
	Month          string  `json:"month" binding:"required"`
	Year           int     `json:"year" binding:"required"`
	AIMessageCount int     `json:"ai_message_count"`
	RatePerMessage float64 `json:"rate_per_message"`
	Notes          string  `json:"notes"`
}

// UpdatePaymentRequest 更新账单请求
type UpdatePaymentRequest struct {
	AmountPaid *float64 `json:"amount_paid"`
	Status     string   `json:"status"`
	Notes      *string  `json:"notes"`
}

// CreatePayment 创建账单，应付金额 = AI 回复数 × 单价
// 未显式给出 AI 回复数时按该客户端的历史 AI 消息量计数
func (s *Service) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*model.Payment, error) {
	rate := req.RatePerMessage
	if rate <= 0 {
		rate = s.defaultRate
	}

	if req.AIMessageCount <= 0 {
		count, err := s.repo.Message.CountAIMessages(req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("failed to count ai messages: %w", err)
		}
		req.AIMessageCount = int(count)
	}

	payment := &model.Payment{
		ClientID:       req.ClientID,
		Month:          req.Month,
		Year:           req.Year,
		AIMessageCount: req.AIMessageCount,
		RatePerMessage: rate,
		TotalDue:       float64(req.AIMessageCount) * rate,
		Status:         model.PaymentStatusPending,
		Notes:          req.Notes,
	}

	if err := s.repo.Payment.CreatePayment(payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

// ListPayments 列出账单
func (s *Service) ListPayments(ctx context.Context, clientID string) ([]*model.Payment, error) {
	return s.repo.Payment.ListPayments(clientID)
}

// UpdatePayment 更新账单（收款、状态、备注）
func (s *Service) UpdatePayment(ctx context.Context, id uint, req *UpdatePaymentRequest) (*model.Payment, error) {
	payment, err := s.repo.Payment.GetPaymentByID(id)
	if err != nil {
		return nil, ErrPaymentNotFound
	}

	if req.AmountPaid != nil {
		payment.AmountPaid = *req.AmountPaid
	}
	if req.Status != "" {
		switch req.Status {
		case model.PaymentStatusPending, model.PaymentStatusPartial, model.PaymentStatusPaid:
			payment.Status = req.Status
		default:
			return nil, fmt.Errorf("invalid payment status: %s", req.Status)
		}
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
	}

	if err := s.repo.Payment.UpdatePayment(payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	return payment, nil
}

// ClientDue 客户端欠费汇总
type ClientDue struct {
	TotalDue   float64 `json:"total_due"`
	AmountPaid float64 `json:"amount_paid"`
	Balance    float64 `json:"balance"`
}

// GetClientDue 汇总某客户端的应付与已付金额
func (s *Service) GetClientDue(ctx context.Context, clientID string) (*ClientDue, error) {
	payments, err := s.repo.Payment.ListPaymentsByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	due := &ClientDue{}
	for _, p := range payments {
		due.TotalDue += p.TotalDue
		due.AmountPaid += p.AmountPaid
	}
	due.Balance = due.TotalDue - due.AmountPaid
	return due, nil
}
