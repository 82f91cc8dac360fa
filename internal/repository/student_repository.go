package repository

import (
	"github.com/wadesk/wadesk/internal/model"
	"gorm.io/gorm"
)

// StudentRepository 学生名册数据访问
type StudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository 创建学生仓库
func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// CreateStudent 创建学生
func (r *StudentRepository) CreateStudent(student *model.Student) error {
	return r.db.Create(student).Error
}

// GetStudentByWhatsappID 获取学生
func (r *StudentRepository) GetStudentByWhatsappID(whatsappID string) (*model.Student, error) {
	var student model.Student
	err := r.db.Where("whatsapp_id = ?", whatsappID).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// ListStudents 列出学生
func (r *StudentRepository) ListStudents(clientID string) ([]*model.Student, error) {
	var students []*model.Student
	query := r.db.Order("name ASC")
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	err := query.Find(&students).Error
	return students, err
}

// UpdateStudent 更新学生
func (r *StudentRepository) UpdateStudent(student *model.Student) error {
	return r.db.Save(student).Error
}

// DeleteStudent 删除学生
func (r *StudentRepository) DeleteStudent(whatsappID string) error {
	return r.db.Delete(&model.Student{}, "whatsapp_id = ?", whatsappID).Error
}

// CountStudents 统计学生数量
func (r *StudentRepository) CountStudents() (int64, error) {
	var count int64
	err := r.db.Model(&model.Student{}).Count(&count).Error
	return count, err
}
