package repository

import (
	"errors"

	"github.com/wadesk/wadesk/internal/model"
	"gorm.io/gorm"
)

// SettingRepository 平台设置数据访问
type SettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 创建设置仓库
func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting 获取设置项
func (r *SettingRepository) GetSetting(key string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// SetSetting 写入设置项（存在则更新）
func (r *SettingRepository) SetSetting(key, value string) (*model.Setting, error) {
	setting, err := r.GetSetting(key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		setting = &model.Setting{Key: key, Value: value}
		if err := r.db.Create(setting).Error; err != nil {
			return nil, err
		}
		return setting, nil
	}

	setting.Value = value
	if err := r.db.Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
