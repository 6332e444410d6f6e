package handlers

import (
	"errors"
	"strconv"

	"rentroll/internal/middleware"
	"rentroll/internal/models"
	"rentroll/internal/services"
	"rentroll/pkg/pagination"
	"rentroll/pkg/response"

	"github.com/gin-gonic/gin"
)

type TenantHandler struct {
	tenantService  *services.TenantService
	bookingService *services.BookingService
}

func NewTenantHandler(tenantService *services.TenantService, bookingService *services.BookingService) *TenantHandler {
	return &TenantHandler{
		tenantService:  tenantService,
		bookingService: bookingService,
	}
}

// CreateTenantRequest 创建租客请求
type CreateTenantRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Unit        string `json:"unit" binding:"required"`
	Type        string `json:"type" binding:"omitempty,oneof=long-term short-term"`
	MonthlyRent int64  `json:"monthly_rent" binding:"omitempty,min=0"`
	DailyRate   int64  `json:"daily_rate" binding:"omitempty,min=0"`
	PropertyID  *uint  `json:"property_id"`
}

// BookNightsRequest 短租预订请求
type BookNightsRequest struct {
	Nights int `json:"nights" binding:"required,min=1"`
}

// Create 添加租客
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	tenant := &models.Tenant{
		OwnerID:     middleware.GetUserID(c),
		PropertyID:  req.PropertyID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Unit:        req.Unit,
		Type:        req.Type,
		MonthlyRent: req.MonthlyRent,
		DailyRate:   req.DailyRate,
	}

	if err := h.tenantService.Create(tenant); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, tenant)
}

// List 房东名下租客列表
func (h *TenantHandler) List(c *gin.Context) {
	pageParams := pagination.ParsePageParams(c)

	tenants, total, err := h.tenantService.GetByOwnerWithPage(
		middleware.GetUserID(c),
		pageParams.Page, pageParams.PageSize,
		c.Query("type"), c.Query("status"), c.Query("search"),
	)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, tenants, pageInfo)
}

// GetByID 租客详情
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	tenant, err := h.tenantService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTenantMissing) {
			response.NotFound(c, "租客不存在")
			return
		}
		response.ServerError(c, "查询失败")
		return
	}

	// 管理员放行，房东只能看自己的租客
	if middleware.GetRole(c) != models.RoleAdmin && tenant.OwnerID != middleware.GetUserID(c) {
		response.Forbidden(c, "无权访问此租客")
		return
	}

	response.Success(c, tenant)
}

// Update 更新租客信息
func (h *TenantHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	tenant, err := h.tenantService.Update(middleware.GetUserID(c), uint(id), updates)
	if err != nil {
		if errors.Is(err, services.ErrTenantMissing) {
			response.NotFound(c, "租客不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, tenant)
}

// Delete 删除租客
func (h *TenantHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.tenantService.Delete(middleware.GetUserID(c), uint(id)); err != nil {
		if errors.Is(err, services.ErrTenantMissing) {
			response.NotFound(c, "租客不存在")
			return
		}
		response.ServerError(c, "删除失败")
		return
	}

	response.Success(c, nil)
}

// BookNights 短租租客按晚预订
func (h *TenantHandler) BookNights(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.tenantService.CheckOwnership(middleware.GetUserID(c), uint(id)); err != nil {
		response.NotFound(c, "租客不存在")
		return
	}

	var req BookNightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	payment, err := h.bookingService.BookNights(uint(id), req.Nights)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTenantMissing):
			response.NotFound(c, "租客不存在")
		case errors.Is(err, services.ErrNotShortTerm),
			errors.Is(err, services.ErrNoDailyRate),
			errors.Is(err, services.ErrInvalidNights):
			response.BadRequest(c, err.Error())
		default:
			response.ServerError(c, "预订失败")
		}
		return
	}

	response.Success(c, payment)
}

// MyProfile 租客门户：按登录邮箱查看自己的档案和付款历史
func (h *TenantHandler) MyProfile(c *gin.Context) {
	tenant, err := h.tenantService.GetByEmail(middleware.GetEmail(c))
	if err != nil {
		if errors.Is(err, services.ErrTenantMissing) {
			response.NotFound(c, "未找到与登录邮箱关联的租客档案")
			return
		}
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, tenant)
}
