package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wadesk/wadesk/internal/service"
	"github.com/wadesk/wadesk/internal/service/student"
)

// StudentHandler 学生名册处理器
type StudentHandler struct {
	svc *service.Services
}

// NewStudentHandler 创建学生处理器
func NewStudentHandler(svc *service.Services) *StudentHandler {
	return &StudentHandler{svc: svc}
}

// Create 创建学生
func (h *StudentHandler) Create(c *gin.Context) {
	var req student.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Student.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, result)
}

// List 列出学生
func (h *StudentHandler) List(c *gin.Context) {
	clientID := c.Query("client_id")

	students, err := h.svc.Student.ListStudents(c.Request.Context(), clientID)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, students)
}

// Get 获取学生
func (h *StudentHandler) Get(c *gin.Context) {
	whatsappID := c.Param("whatsapp_id")

	result, err := h.svc.Student.GetStudent(c.Request.Context(), whatsappID)
	if err != nil {
		if errors.Is(err, student.ErrStudentNotFound) {
			NotFound(c, "student not found")
			return
		}
		Error(c, err)
		return
	}

	Success(c, result)
}

// Update 更新学生
func (h *StudentHandler) Update(c *gin.Context) {
	whatsappID := c.Param("whatsapp_id")

	var req student.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Student.UpdateStudent(c.Request.Context(), whatsappID, &req)
	if err != nil {
		if errors.Is(err, student.ErrStudentNotFound) {
			NotFound(c, "student not found")
			return
		}
		Error(c, err)
		return
	}

	Success(c, result)
}

// Delete 删除学生
func (h *StudentHandler) Delete(c *gin.Context) {
	whatsappID := c.Param("whatsapp_id")

	if err := h.svc.Student.DeleteStudent(c.Request.Context(), whatsappID); err != nil {
		Error(c, err)
		return
	}

	NoContent(c)
}
