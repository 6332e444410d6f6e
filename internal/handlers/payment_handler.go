package handlers

import (
	"errors"

	"rentroll/internal/middleware"
	"rentroll/internal/models"
	"rentroll/internal/services"
	"rentroll/pkg/response"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	intentService *services.PaymentIntentService
	tenantService *services.TenantService
}

func NewPaymentHandler(intentService *services.PaymentIntentService, tenantService *services.TenantService) *PaymentHandler {
	return &PaymentHandler{
		intentService: intentService,
		tenantService: tenantService,
	}
}

// CreateIntentRequest 创建支付意向请求
// 金额只在创建意向时被接受一次，后续确认不再信任调用方金额
type CreateIntentRequest struct {
	TenantID uint    `json:"tenant_id" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Provider string  `json:"provider" binding:"required,oneof=card mobile_money"`
}

// ConfirmCardRequest 卡支付确认请求
type ConfirmCardRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// MobileMoneyCallbackRequest 移动支付回调载荷
type MobileMoneyCallbackRequest struct {
	Reference string `json:"reference" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// CreateIntent 创建外部扣款意向
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	// 租客门户也能为自己创建意向，房东只能为名下租客创建
	if middleware.GetRole(c) == models.RoleLandlord {
		if err := h.tenantService.CheckOwnership(middleware.GetUserID(c), req.TenantID); err != nil {
			response.NotFound(c, "租客不存在")
			return
		}
	}

	intent, err := h.intentService.CreateIntent(req.TenantID, req.Amount, req.Provider)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTenantMissing):
			response.NotFound(c, "租客不存在")
		case errors.Is(err, services.ErrInvalidAmount):
			response.BadRequest(c, err.Error())
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}

	response.Success(c, gin.H{
		"reference":     intent.Reference,
		"client_secret": intent.ClientSecret,
		"amount":        intent.Amount,
		"currency":      intent.Currency,
		"expires_at":    intent.ExpiresAt,
	})
}

// ConfirmCard 卡支付成功确认，入账意向上的授权金额
func (h *PaymentHandler) ConfirmCard(c *gin.Context) {
	var req ConfirmCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	tenant, payment, err := h.intentService.ConfirmCard(req.Reference)
	if err != nil {
		h.settleError(c, err)
		return
	}

	response.Success(c, gin.H{
		"payment":     payment,
		"new_balance": tenant.Balance,
	})
}

// MobileMoneyCallback 移动支付服务商回调（webhook，无登录态）
func (h *PaymentHandler) MobileMoneyCallback(c *gin.Context) {
	var req MobileMoneyCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	tenant, payment, err := h.intentService.HandleMobileMoneyCallback(req.Reference, req.Reason)
	if err != nil {
		h.settleError(c, err)
		return
	}

	// 非授权原因码：已软忽略，对服务商返回成功避免重发
	if payment == nil {
		response.SuccessWithMessage(c, "事件已接收", nil)
		return
	}

	response.Success(c, gin.H{
		"payment":     payment,
		"new_balance": tenant.Balance,
	})
}

func (h *PaymentHandler) settleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrIntentMissing):
		response.NotFound(c, "支付意向不存在")
	case errors.Is(err, services.ErrIntentNotPending),
		errors.Is(err, services.ErrIntentExpired),
		errors.Is(err, services.ErrProviderMismatch):
		response.PaymentRequired(c, err.Error())
	case errors.Is(err, services.ErrTenantMissing):
		response.NotFound(c, "租客不存在")
	default:
		response.ServerError(c, "支付确认失败")
	}
}
