package repository

import (
	"github.com/wadesk/wadesk/internal/model"
	"gorm.io/gorm"
)

// AuthRepository 用户与令牌数据访问
type AuthRepository struct {
	db *gorm.DB
}

// NewAuthRepository 创建认证仓库
func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// CreateUser 创建用户
func (r *AuthRepository) CreateUser(user *model.User) error {
	return r.db.Create(user).Error
}

// GetUserByID 获取用户
func (r *AuthRepository) GetUserByID(id string) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail 按邮箱获取用户
func (r *AuthRepository) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser 更新用户
func (r *AuthRepository) UpdateUser(user *model.User) error {
	return r.db.Save(user).Error
}

// ListClients 列出所有客户端用户（超级管理员视角）
func (r *AuthRepository) ListClients() ([]*model.User, error) {
	var users []*model.User
	err := r.db.Where("role = ?", model.RoleClient).Order("created_at DESC").Find(&users).Error
	return users, err
}

// CountClients 统计客户端数量
func (r *AuthRepository) CountClients() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("role = ?", model.RoleClient).Count(&count).Error
	return count, err
}

// SaveToken 保存令牌
func (r *AuthRepository) SaveToken(token *model.AuthToken) error {
	return r.db.Create(token).Error
}

// GetTokenByValue 按令牌内容获取令牌记录
func (r *AuthRepository) GetTokenByValue(token string) (*model.AuthToken, error) {
	var record model.AuthToken
	err := r.db.Where("token = ?", token).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// RevokeToken 撤销令牌
func (r *AuthRepository) RevokeToken(token string) error {
	return r.db.Model(&model.AuthToken{}).Where("token = ?", token).Update("is_revoked", true).Error
}

// RevokeUserTokens 撤销用户的所有令牌
func (r *AuthRepository) RevokeUserTokens(userID string) error {
	return r.db.Model(&model.AuthToken{}).Where("user_id = ?", userID).Update("is_revoked", true).Error
}
