package handlers

import (
	"errors"
	"strconv"

	"rentroll/internal/middleware"
	"rentroll/internal/models"
	"rentroll/internal/services"
	"rentroll/pkg/response"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledgerService   *services.LedgerService
	rolloverService *services.RolloverService
	tenantService   *services.TenantService
}

func NewLedgerHandler(ledgerService *services.LedgerService, rolloverService *services.RolloverService, tenantService *services.TenantService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService:   ledgerService,
		rolloverService: rolloverService,
		tenantService:   tenantService,
	}
}

// RecordCashRequest 现金/支票入账请求
type RecordCashRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// StartNewMonthRequest 月初起账请求
// 起账不幂等，重复触发会重复累计，confirm是唯一的拦截闸门
type StartNewMonthRequest struct {
	Confirm bool `json:"confirm" binding:"required"`
}

// RecordCash 现金/支票付款直接入账
func (h *LedgerHandler) RecordCash(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.tenantService.CheckOwnership(middleware.GetUserID(c), uint(id)); err != nil {
		response.NotFound(c, "租客不存在")
		return
	}

	var req RecordCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	tenant, payment, err := h.ledgerService.ApplyPayment(uint(id), req.Amount, models.MethodCash)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTenantMissing):
			response.NotFound(c, "租客不存在")
		case errors.Is(err, services.ErrInvalidAmount):
			response.BadRequest(c, err.Error())
		default:
			response.ServerError(c, "入账失败")
		}
		return
	}

	response.Success(c, gin.H{
		"payment":     payment,
		"new_balance": tenant.Balance,
	})
}

// GetPayments 租客付款历史
func (h *LedgerHandler) GetPayments(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.tenantService.CheckOwnership(middleware.GetUserID(c), uint(id)); err != nil {
		response.NotFound(c, "租客不存在")
		return
	}

	payments, err := h.ledgerService.GetPayments(uint(id))
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, payments)
}

// StartNewMonth 月初起账：给名下所有租客累计月租金
func (h *LedgerHandler) StartNewMonth(c *gin.Context) {
	var req StartNewMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		response.BadRequest(c, "起账操作需要确认（confirm=true）")
		return
	}

	count, err := h.rolloverService.StartNewMonth(middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, "起账失败，本次未产生任何应计")
		return
	}

	response.SuccessWithMessage(c, "起账完成", gin.H{
		"tenants_updated": count,
	})
}
