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

type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// SubmitApplicationRequest 公开提交租房申请
type SubmitApplicationRequest struct {
	OwnerID     *uint  `json:"owner_id"`
	PropertyID  *uint  `json:"property_id"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Income      int64  `json:"income" binding:"omitempty,min=0"`
	DesiredUnit string `json:"desired_unit" binding:"required"`
}

// DecisionRequest 批准/拒绝请求
// 两个决定都是不可逆的删除性操作，必须显式确认
type DecisionRequest struct {
	Confirm bool `json:"confirm" binding:"required"`
}

// AssignRequest 管理员归档请求
type AssignRequest struct {
	OwnerID uint `json:"owner_id" binding:"required"`
}

// Submit 提交申请（公开接口，无登录态）
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	app := &models.RentalApplication{
		OwnerID:     req.OwnerID,
		PropertyID:  req.PropertyID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Income:      req.Income,
		DesiredUnit: req.DesiredUnit,
	}

	if err := h.applicationService.Submit(app); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "申请已提交", gin.H{"id": app.ID})
}

// List 房东视角的申请列表
func (h *ApplicationHandler) List(c *gin.Context) {
	pageParams := pagination.ParsePageParams(c)

	apps, total, err := h.applicationService.GetByOwnerWithPage(
		middleware.GetUserID(c), pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, apps, pageInfo)
}

// Unassigned 管理员查看未分配的申请
func (h *ApplicationHandler) Unassigned(c *gin.Context) {
	apps, err := h.applicationService.GetUnassigned()
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	response.Success(c, apps)
}

// Assign 管理员把申请归档给房东
func (h *ApplicationHandler) Assign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.applicationService.Assign(uint(id), req.OwnerID); err != nil {
		if errors.Is(err, services.ErrApplicationMissing) {
			response.NotFound(c, "申请不存在或已被分配")
			return
		}
		response.ServerError(c, "归档失败")
		return
	}

	response.Success(c, nil)
}

// Approve 批准申请：创建租客并删除申请，同一事务
func (h *ApplicationHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		response.BadRequest(c, "批准操作需要确认（confirm=true）")
		return
	}

	tenant, err := h.applicationService.Approve(uint(id), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrApplicationMissing) {
			response.NotFound(c, "申请不存在")
			return
		}
		response.ServerError(c, "批准失败，申请保持待处理状态")
		return
	}

	response.SuccessWithMessage(c, "申请已批准", tenant)
}

// Reject 拒绝申请：删除申请行
func (h *ApplicationHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		response.BadRequest(c, "拒绝操作需要确认（confirm=true）")
		return
	}

	if err := h.applicationService.Reject(uint(id)); err != nil {
		if errors.Is(err, services.ErrApplicationMissing) {
			response.NotFound(c, "申请不存在")
			return
		}
		response.ServerError(c, "拒绝失败")
		return
	}

	response.Success(c, nil)
}
