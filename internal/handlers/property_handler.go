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

type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// PropertyRequest 物业创建/更新请求
type PropertyRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// Create 添加物业
func (h *PropertyHandler) Create(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	property := &models.Property{
		OwnerID: middleware.GetUserID(c),
		Name:    req.Name,
		Address: req.Address,
	}

	if err := h.propertyService.Create(property); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, property)
}

// List 物业列表
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.propertyService.GetByOwner(middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	response.Success(c, properties)
}

// Update 更新物业信息
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.propertyService.Update(middleware.GetUserID(c), uint(id), req.Name, req.Address); err != nil {
		if errors.Is(err, services.ErrPropertyMissing) {
			response.NotFound(c, "物业不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, nil)
}

// Delete 删除物业
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.propertyService.Delete(middleware.GetUserID(c), uint(id)); err != nil {
		if errors.Is(err, services.ErrPropertyMissing) {
			response.NotFound(c, "物业不存在")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, nil)
}
