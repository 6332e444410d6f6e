package handlers

import (
	"errors"
	"strconv"

	"rentroll/internal/middleware"
	"rentroll/internal/services"
	"rentroll/pkg/response"

	"github.com/gin-gonic/gin"
)

type LeaseHandler struct {
	leaseService  *services.LeaseService
	tenantService *services.TenantService
}

func NewLeaseHandler(leaseService *services.LeaseService, tenantService *services.TenantService) *LeaseHandler {
	return &LeaseHandler{
		leaseService:  leaseService,
		tenantService: tenantService,
	}
}

// ReplaceLeaseRequest 上传/替换租约请求
type ReplaceLeaseRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// SignLeaseRequest 签署租约请求
type SignLeaseRequest struct {
	Signature string `json:"signature" binding:"required"`
}

// Replace 房东上传或替换租约文件，旧签名同步作废
func (h *LeaseHandler) Replace(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req ReplaceLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.leaseService.ReplaceLease(middleware.GetUserID(c), uint(id), req.URL); err != nil {
		if errors.Is(err, services.ErrTenantMissing) {
			response.NotFound(c, "租客不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "租约文件已更新，等待租客重新签署", nil)
}

// Sign 租客签署当前租约
func (h *LeaseHandler) Sign(c *gin.Context) {
	var req SignLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	// 租客门户按登录邮箱定位自己的档案，不接受任意租客ID
	tenant, err := h.tenantService.GetByEmail(middleware.GetEmail(c))
	if err != nil {
		response.NotFound(c, "未找到与登录邮箱关联的租客档案")
		return
	}

	signed, err := h.leaseService.SignLease(tenant.ID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeaseMissing),
			errors.Is(err, services.ErrLeaseAlreadySigned),
			errors.Is(err, services.ErrSignatureEmpty):
			response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrTenantMissing):
			response.NotFound(c, "租客不存在")
		default:
			response.ServerError(c, "签署失败")
		}
		return
	}

	response.Success(c, gin.H{
		"lease_url":       signed.LeaseURL,
		"lease_signed_at": signed.LeaseSignedAt,
	})
}
