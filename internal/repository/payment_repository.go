package repository

import (
	"github.com/wadesk/wadesk/internal/model"
	"gorm.io/gorm"
)

// PaymentRepository 账单数据访问
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建账单仓库
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePayment 创建账单
func (r *PaymentRepository) CreatePayment(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

// GetPaymentByID 获取账单
func (r *PaymentRepository) GetPaymentByID(id uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPayments 列出账单，按年月倒序
func (r *PaymentRepository) ListPayments(clientID string) ([]*model.Payment, error) {
	var payments []*model.Payment
	query := r.db.Order("year DESC, month DESC")
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	err := query.Find(&payments).Error
	return payments, err
}

// ListPaymentsByClient 列出某客户端的全部账单
func (r *PaymentRepository) ListPaymentsByClient(clientID string) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.Where("client_id = ?", clientID).Find(&payments).Error
	return payments, err
}

// UpdatePayment 更新账单
func (r *PaymentRepository) UpdatePayment(payment *model.Payment) error {
	return r.db.Save(payment).Error
}

// SumRevenue 已收款总额
func (r *PaymentRepository) SumRevenue() (float64, error) {
	var total float64
	err := r.db.Raw("SELECT COALESCE(SUM(amount_paid), 0) FROM payments").Scan(&total).Error
	return total, err
}

// SumPendingDue 未结清账单的待收款总额
func (r *PaymentRepository) SumPendingDue() (float64, error) {
	var pending float64
	err := r.db.Raw(
		"SELECT COALESCE(SUM(total_due - amount_paid), 0) FROM payments WHERE status != ?",
		model.PaymentStatusPaid,
	).Scan(&pending).Error
	return pending, err
}
