package handlers

import (
	"errors"
	"strconv"

	"rentroll/internal/middleware"
	"rentroll/internal/services"
	"rentroll/pkg/response"

	"github.com/gin-gonic/gin"
)

type RepairHandler struct {
	repairService *services.RepairService
	tenantService *services.TenantService
}

func NewRepairHandler(repairService *services.RepairService, tenantService *services.TenantService) *RepairHandler {
	return &RepairHandler{
		repairService: repairService,
		tenantService: tenantService,
	}
}

// SubmitRepairRequest 租客提交维修请求
type SubmitRepairRequest struct {
	Issue    string `json:"issue" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
}

// Submit 租客提交维修请求
func (h *RepairHandler) Submit(c *gin.Context) {
	var req SubmitRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	tenant, err := h.tenantService.GetByEmail(middleware.GetEmail(c))
	if err != nil {
		response.NotFound(c, "未找到与登录邮箱关联的租客档案")
		return
	}

	repair, err := h.repairService.Submit(tenant.ID, req.Issue, req.Priority)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, repair)
}

// ListMine 租客查看自己提交的维修请求
func (h *RepairHandler) ListMine(c *gin.Context) {
	tenant, err := h.tenantService.GetByEmail(middleware.GetEmail(c))
	if err != nil {
		response.NotFound(c, "未找到与登录邮箱关联的租客档案")
		return
	}

	repairs, err := h.repairService.GetByTenant(tenant.ID)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	response.Success(c, repairs)
}

// ListForOwner 房东查看名下维修请求
func (h *RepairHandler) ListForOwner(c *gin.Context) {
	repairs, err := h.repairService.GetByOwner(middleware.GetUserID(c), c.Query("status"))
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	response.Success(c, repairs)
}

// Delete 房东删除维修请求
func (h *RepairHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.repairService.Delete(middleware.GetUserID(c), uint(id)); err != nil {
		if errors.Is(err, services.ErrRepairMissing) {
			response.NotFound(c, "维修请求不存在")
			return
		}
		response.ServerError(c, "删除失败")
		return
	}

	response.Success(c, nil)
}

// Resolve 房东标记维修完成
func (h *RepairHandler) Resolve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.repairService.Resolve(middleware.GetUserID(c), uint(id)); err != nil {
		if errors.Is(err, services.ErrRepairMissing) {
			response.NotFound(c, "维修请求不存在")
			return
		}
		response.ServerError(c, "更新失败")
		return
	}

	response.Success(c, nil)
}
