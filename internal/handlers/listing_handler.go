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

type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// CreateListingRequest 发布招租请求
type CreateListingRequest struct {
	PropertyID  *uint  `json:"property_id"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Unit        string `json:"unit" binding:"required"`
	Rent        int64  `json:"rent" binding:"required,min=1"`
	PhotoURL    string `json:"photo_url" binding:"omitempty,url"`
}

// SetAvailableRequest 上下架请求
type SetAvailableRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// Create 发布招租信息
func (h *ListingHandler) Create(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	listing := &models.Listing{
		OwnerID:     middleware.GetUserID(c),
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		Description: req.Description,
		Unit:        req.Unit,
		Rent:        req.Rent,
		PhotoURL:    req.PhotoURL,
	}

	if err := h.listingService.Create(listing); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, listing)
}

// Public 公开浏览可租房源（无登录态）
func (h *ListingHandler) Public(c *gin.Context) {
	listings, err := h.listingService.GetPublic()
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	response.Success(c, listings)
}

// Mine 房东自己的全部招租信息
func (h *ListingHandler) Mine(c *gin.Context) {
	listings, err := h.listingService.GetByOwner(middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	response.Success(c, listings)
}

// SetAvailable 上架/下架
func (h *ListingHandler) SetAvailable(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req SetAvailableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.listingService.SetAvailable(middleware.GetUserID(c), uint(id), *req.Available); err != nil {
		if errors.Is(err, services.ErrListingMissing) {
			response.NotFound(c, "招租信息不存在")
			return
		}
		response.ServerError(c, "更新失败")
		return
	}

	response.Success(c, nil)
}

// Delete 删除招租信息
func (h *ListingHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.listingService.Delete(middleware.GetUserID(c), uint(id)); err != nil {
		if errors.Is(err, services.ErrListingMissing) {
			response.NotFound(c, "招租信息不存在")
			return
		}
		response.ServerError(c, "删除失败")
		return
	}

	response.Success(c, nil)
}
