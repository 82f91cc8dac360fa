package repository

import "gorm.io/gorm"

// Repositories 仓库集合，用于统一管理所有仓库
type Repositories struct {
	DB       *gorm.DB // 直接访问数据库
	Auth     *AuthRepository
	Document *DocumentRepository
	Message  *MessageRepository
	Student  *StudentRepository
	Payment  *PaymentRepository
	Setting  *SettingRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		Auth:     NewAuthRepository(db),
		Document: NewDocumentRepository(db),
		Message:  NewMessageRepository(db),
		Student:  NewStudentRepository(db),
		Payment:  NewPaymentRepository(db),
		Setting:  NewSettingRepository(db),
	}
}
