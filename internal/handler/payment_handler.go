package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wadesk/wadesk/internal/service"
	"github.com/wadesk/wadesk/internal/service/payment"
)

// PaymentHandler 账单处理器
type PaymentHandler struct {
	svc *service.Services
}

// NewPaymentHandler 创建账单处理器
func NewPaymentHandler(svc *service.Services) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Create 创建账单
func (h *PaymentHandler) Create(c *gin.Context) {
	var req payment.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Payment.CreatePayment(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, result)
}

// List 列出账单
func (h *PaymentHandler) List(c *gin.Context) {
	clientID := c.Query("client_id")

	payments, err := h.svc.Payment.ListPayments(c.Request.Context(), clientID)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, payments)
}

// Update 更新账单
func (h *PaymentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid payment id")
		return
	}

	var req payment.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid parameters: "+err.Error())
		return
	}

	result, err := h.svc.Payment.UpdatePayment(c.Request.Context(), uint(id), &req)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			NotFound(c, "payment not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}

	Success(c, result)
}

// ClientDue 查询某客户端的欠费汇总
func (h *PaymentHandler) ClientDue(c *gin.Context) {
	clientID := c.Param("client_id")

	due, err := h.svc.Payment.GetClientDue(c.Request.Context(), clientID)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, due)
}
