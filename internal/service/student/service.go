// Package student 提供学生名册管理
package student

import (
	"context"
	"errors"
	"fmt"

	"github.com/wadesk/wadesk/internal/model"
	"github.com/wadesk/wadesk/internal/repository"
)

// ErrStudentNotFound 学生不存在
var ErrStudentNotFound = errors.New("student not found")

// Service 学生服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建学生服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// CreateStudentRequest 创建学生请求
type CreateStudentRequest struct {
	WhatsappID string `json:"whatsapp_id" binding:"required"`
	Name       string `json:"name"`
	ClientID   string `json:"client_id"`
}

// UpdateStudentRequest 更新学生请求
type UpdateStudentRequest struct {
	Name *string `json:"name"`
}

// CreateStudent 创建学生
func (s *Service) CreateStudent(ctx context.Context, req *CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		WhatsappID: req.WhatsappID,
		Name:       req.Name,
		ClientID:   req.ClientID,
	}

	if err := s.repo.Student.CreateStudent(student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return student, nil
}

// GetStudent 获取学生
func (s *Service) GetStudent(ctx context.Context, whatsappID string) (*model.Student, error) {
	student, err := s.repo.Student.GetStudentByWhatsappID(whatsappID)
	if err != nil {
		return nil, ErrStudentNotFound
	}
	return student, nil
}

// ListStudents 列出学生
func (s *Service) ListStudents(ctx context.Context, clientID string) ([]*model.Student, error) {
	return s.repo.Student.ListStudents(clientID)
}

// UpdateStudent 更新学生
func (s *Service) UpdateStudent(ctx context.Context, whatsappID string, req *UpdateStudentRequest) (*model.Student, error) {
	student, err := s.repo.Student.GetStudentByWhatsappID(whatsappID)
	if err != nil {
		return nil, ErrStudentNotFound
	}

	if req.Name != nil {
		student.Name = *req.Name
	}

	if err := s.repo.Student.UpdateStudent(student); err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}
	return student, nil
}

// DeleteStudent 删除学生
func (s *Service) DeleteStudent(ctx context.Context, whatsappID string) error {
	if err := s.repo.Student.DeleteStudent(whatsappID); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return nil
}
