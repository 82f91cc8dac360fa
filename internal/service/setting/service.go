// Package setting 提供平台设置读写
package setting

import (
	"context"
	"errors"
	"fmt"

	"github.com/wadesk/wadesk/internal/model"
	"github.com/wadesk/wadesk/internal/repository"
	"gorm.io/gorm"
)

// ErrSettingNotFound 设置项不存在
var ErrSettingNotFound = errors.New("setting not found")

// Service 设置服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建设置服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// GetSetting 获取设置项
func (s *Service) GetSetting(ctx context.Context, key string) (*model.Setting, error) {
	setting, err := s.repo.Setting.GetSetting(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return setting, nil
}

// SetSetting 写入设置项
func (s *Service) SetSetting(ctx context.Context, key, value string) (*model.Setting, error) {
	setting, err := s.repo.Setting.SetSetting(key, value)
	if err != nil {
		return nil, fmt.Errorf("failed to set setting: %w", err)
	}
	return setting, nil
}
